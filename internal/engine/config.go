package engine

import (
	"fmt"
	"geocache-server/internal/domain"
	"geocache-server/pkg/config"
	"math"
)

// Config хранит параметры мира.
// TileDegrees обязан совпадать между сохранением и загрузкой.
type Config struct {
	TileDegrees      float64 `env:"GEOCACHE_TILE_DEGREES" envDefault:"0.0001"`
	NeighborhoodSize int     `env:"GEOCACHE_NEIGHBORHOOD_SIZE" envDefault:"8"`
	SpawnProbability float64 `env:"GEOCACHE_SPAWN_PROBABILITY" envDefault:"0.1"`
	StartLat         float64 `env:"GEOCACHE_START_LAT" envDefault:"36.98949379578401"`
	StartLng         float64 `env:"GEOCACHE_START_LNG" envDefault:"-122.06277128548504"`
	MaxInitialCoins  int     `env:"GEOCACHE_MAX_INITIAL_COINS" envDefault:"3"`
}

// NewConfig создает конфиг по умолчанию
func NewConfig() Config {
	return Config{
		TileDegrees:      domain.DefaultTileDegrees,
		NeighborhoodSize: domain.DefaultNeighborhoodSize,
		SpawnProbability: domain.DefaultSpawnProbability,
		StartLat:         domain.DefaultStartLat,
		StartLng:         domain.DefaultStartLng,
		MaxInitialCoins:  domain.DefaultMaxInitialCoins,
	}
}

// LoadConfig читает конфиг из окружения и сразу его проверяет
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Start - стартовая координата игрока
func (c Config) Start() domain.LatLng {
	return domain.LatLng{Lat: c.StartLat, Lng: c.StartLng}
}

func (c Config) Validate() error {
	if math.IsNaN(c.TileDegrees) || math.IsInf(c.TileDegrees, 0) || c.TileDegrees <= 0 {
		return fmt.Errorf("%w: tile size %v", domain.ErrInvalidCellConfiguration, c.TileDegrees)
	}
	if c.NeighborhoodSize < 1 {
		return fmt.Errorf("%w: neighborhood size %d", domain.ErrInvalidCellConfiguration, c.NeighborhoodSize)
	}
	if math.IsNaN(c.SpawnProbability) || c.SpawnProbability < 0 || c.SpawnProbability > 1 {
		return fmt.Errorf("%w: spawn probability %v", domain.ErrInvalidCellConfiguration, c.SpawnProbability)
	}
	if c.MaxInitialCoins < 1 {
		return fmt.Errorf("%w: max initial coins %d", domain.ErrInvalidCellConfiguration, c.MaxInitialCoins)
	}
	if err := c.Start().Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", domain.ErrInvalidCellConfiguration, err)
	}
	return nil
}
