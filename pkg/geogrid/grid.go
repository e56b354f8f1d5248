// Package geogrid переводит географические координаты в канонические ячейки сетки.
//
// Grid - flyweight: одна и та же пара (i, j) всегда возвращает один и тот же *domain.Cell.
// Таблица интернирования только растёт и ограничена числом посещённых ячеек.
package geogrid

import (
	"fmt"
	"geocache-server/internal/core/types"
	"geocache-server/internal/domain"
	"math"
)

type Grid struct {
	tileDegrees float64
	cells       map[types.CellKey]*domain.Cell

	// Индексы вне int32 в упакованный ключ не помещаются; держим их отдельно
	wide map[[2]int]*domain.Cell
}

// New создаёт сетку с шагом tileDegrees.
// Неположительный или не конечный шаг - ErrInvalidCellConfiguration.
func New(tileDegrees float64) (*Grid, error) {
	if math.IsNaN(tileDegrees) || math.IsInf(tileDegrees, 0) || tileDegrees <= 0 {
		return nil, fmt.Errorf("%w: tile size %v", domain.ErrInvalidCellConfiguration, tileDegrees)
	}
	return &Grid{
		tileDegrees: tileDegrees,
		cells:       make(map[types.CellKey]*domain.Cell),
		wide:        make(map[[2]int]*domain.Cell),
	}, nil
}

// TileDegrees возвращает шаг сетки в градусах
func (g *Grid) TileDegrees() float64 {
	return g.tileDegrees
}

// GetCell возвращает каноническую ячейку (i, j), создавая её при первом обращении.
func (g *Grid) GetCell(i, j int) *domain.Cell {
	if !types.InRange(i, j) {
		return g.getWideCell(i, j)
	}
	key := types.PackCellKey(i, j)
	if cell, ok := g.cells[key]; ok {
		return cell
	}
	cell := &domain.Cell{I: i, J: j}
	g.cells[key] = cell
	return cell
}

func (g *Grid) getWideCell(i, j int) *domain.Cell {
	key := [2]int{i, j}
	if cell, ok := g.wide[key]; ok {
		return cell
	}
	cell := &domain.Cell{I: i, J: j}
	g.wide[key] = cell
	return cell
}

// GetCellFromCoordinate: i = floor(lat / TILE), j = floor(lng / TILE).
func (g *Grid) GetCellFromCoordinate(lat, lng float64) *domain.Cell {
	i := int(math.Floor(lat / g.tileDegrees))
	j := int(math.Floor(lng / g.tileDegrees))
	return g.GetCell(i, j)
}

// GetCellFromLatLng - то же для domain.LatLng
func (g *Grid) GetCellFromLatLng(p domain.LatLng) *domain.Cell {
	return g.GetCellFromCoordinate(p.Lat, p.Lng)
}

// Canonical возвращает интернированную копию произвольной ячейки
// (например, разобранной из JSON).
func (g *Grid) Canonical(c domain.Cell) *domain.Cell {
	return g.GetCell(c.I, c.J)
}

// Bounds возвращает юго-западный и северо-восточный углы ячейки.
func (g *Grid) Bounds(cell *domain.Cell) (sw, ne domain.LatLng) {
	sw = domain.LatLng{
		Lat: float64(cell.I) * g.tileDegrees,
		Lng: float64(cell.J) * g.tileDegrees,
	}
	ne = sw.Shift(g.tileDegrees, g.tileDegrees)
	return sw, ne
}

// Center возвращает центр ячейки (там рисуется маркер кэша).
func (g *Grid) Center(cell *domain.Cell) domain.LatLng {
	sw, _ := g.Bounds(cell)
	return sw.Shift(g.tileDegrees/2, g.tileDegrees/2)
}

// Size - сколько ячеек интернировано
func (g *Grid) Size() int {
	return len(g.cells) + len(g.wide)
}
