package logger

import (
	"geocache-server/pkg/config"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// До вызова Init пишет в stderr с уровнем info, чтобы тесты и утилиты не падали на nil.
var Log = logrus.New()

// Options - настройки логгера из окружения.
type Options struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"` // text | json
}

// Init инициализирует глобальный логгер из переменных окружения.
// Эта функция должна быть вызвана один раз при старте приложения в main.go.
func Init() {
	var opts Options
	if err := config.ParseEnv(&opts); err != nil {
		// Кривое окружение не должно ронять процесс: остаёмся на дефолтах
		opts = Options{Level: "info", Format: "text"}
	}
	Configure(opts, os.Stdout)
}

// Configure применяет настройки к глобальному логгеру.
func Configure(opts Options, out io.Writer) {
	l := logrus.New()

	// 1. Уровень. По умолчанию - "info". Для отладки спавна можно выставить "debug".
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	// 2. Форматтер.
	// "json" - для продакшена и сбора логов.
	// "text" - для удобной разработки.
	if strings.ToLower(opts.Format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	// 3. Куда писать.
	l.SetOutput(out)

	Log = l
}
