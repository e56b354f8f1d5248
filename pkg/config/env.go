// Package config - тонкая обёртка над caarlos0/env для всех точек входа.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// ParseEnv загружает конфигурацию из переменных окружения в target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Exitf пишет сообщение в stderr и завершает процесс с кодом 1.
// Для фатальных ошибок конфигурации на старте, когда логгер ещё не готов.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
