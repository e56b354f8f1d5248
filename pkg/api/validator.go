package api

import (
	"errors"
	"fmt"
	"math"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p DirectionPayload) Validate() error {
	if p.Di == 0 && p.Dj == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Di < -1 || p.Di > 1 || p.Dj < -1 || p.Dj > 1 {
		return errors.New("movement step too large")
	}
	return nil
}

func (p PositionPayload) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return errors.New("coordinates must be finite")
	}
	if p.Lat < -90 || p.Lat > 90 {
		return errors.New("lat out of range")
	}
	if p.Lng < -180 || p.Lng > 180 {
		return errors.New("lng out of range")
	}
	return nil
}

func (p CoinPayload) Validate() error {
	if p.Coin.Serial < 0 {
		return errors.New("serial cannot be negative")
	}
	if err := p.Coin.Cell.Validate(); err != nil {
		return fmt.Errorf("coin cell: %w", err)
	}
	if err := p.Cache.Validate(); err != nil {
		return fmt.Errorf("cache cell: %w", err)
	}
	return nil
}

// Validate: индексы ячейки обязаны помещаться в int32
func (c CellView) Validate() error {
	if c.I < math.MinInt32 || c.I > math.MaxInt32 || c.J < math.MinInt32 || c.J > math.MaxInt32 {
		return fmt.Errorf("cell index out of range: (%d,%d)", c.I, c.J)
	}
	return nil
}
