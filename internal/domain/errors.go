package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMementoFormat - снимок кэша повреждён или не разбирается.
	ErrMementoFormat = errors.New("malformed cache memento")

	// ErrCoinNotFound - монеты нет там, откуда её пытаются взять.
	// Для collect/deposit это штатная ситуация (двойной клик), а не авария.
	ErrCoinNotFound = errors.New("coin not found")

	// ErrCacheNotFound - в ячейке нет материализованного кэша.
	ErrCacheNotFound = errors.New("cache not found")

	// ErrDuplicateCoin - монета с такой идентичностью уже лежит в целевом контейнере.
	ErrDuplicateCoin = errors.New("duplicate coin identity")

	// ErrInvalidCellConfiguration - шаг сетки или радиус окрестности неположительны.
	// Фатально на старте: ломает воспроизводимость ячеек.
	ErrInvalidCellConfiguration = errors.New("invalid cell configuration")

	// ErrCellOutOfRange - индекс ячейки не помещается в int32.
	// Такие ячейки приходят только из внешних данных (клиент, сохранение).
	ErrCellOutOfRange = errors.New("cell index out of range")
)

// MementoFormatError описывает, что именно не так со снимком.
// errors.Is(err, ErrMementoFormat) == true для любого MementoFormatError.
type MementoFormatError struct {
	Key    string // Ключ ячейки, для которой разбирался снимок
	Reason string
	Err    error
}

func (e *MementoFormatError) Error() string {
	msg := fmt.Sprintf("memento %s: %s", e.Key, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MementoFormatError) Unwrap() error {
	return e.Err
}

func (e *MementoFormatError) Is(target error) bool {
	return target == ErrMementoFormat
}
