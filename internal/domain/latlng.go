package domain

import (
	"errors"
	"math"
)

// LatLng - географическая точка в градусах.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate проверяет, что точка конечна и лежит в допустимых диапазонах.
func (p LatLng) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return errors.New("coordinate is not a finite number")
	}
	if p.Lat < -90 || p.Lat > 90 {
		return errors.New("latitude out of range")
	}
	if p.Lng < -180 || p.Lng > 180 {
		return errors.New("longitude out of range")
	}
	return nil
}

// Shift возвращает новую точку со смещением в градусах
func (p LatLng) Shift(dLat, dLng float64) LatLng {
	return LatLng{Lat: p.Lat + dLat, Lng: p.Lng + dLng}
}
