package storage

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// Load читает слот и проверяет заголовок и контрольную сумму
func (s *FileStore) Load(ctx context.Context, slot string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validSlot(slot); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path(slot))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, slot)
		}
		return nil, err
	}
	defer f.Close()

	payload, _, err := readBinary(bufio.NewReader(f))
	return payload, err
}

// Slots перечисляет сохраненные слоты по имени. Временные файлы незавершенной записи пропускаются.
func (s *FileStore) Slots(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}

	var slots []string
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), slotExt)
		if e.IsDir() || !ok || validSlot(name) != nil {
			continue
		}
		slots = append(slots, name)
	}
	sort.Strings(slots)
	return slots, nil
}

// Stat возвращает заголовок слота без проверки тела
func (s *FileStore) Stat(slot string) (SaveFileHeader, error) {
	var header SaveFileHeader
	if err := validSlot(slot); err != nil {
		return header, err
	}
	f, err := os.Open(s.path(slot))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return header, fmt.Errorf("%w: %s", ErrSlotNotFound, slot)
		}
		return header, err
	}
	defer f.Close()

	err = readHeader(f, &header)
	return header, err
}

func readHeader(r io.Reader, header *SaveFileHeader) error {
	if err := binary.Read(r, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("%w: failed to read header: %v", ErrCorrupt, err)
	}
	if string(header.Magic[:]) != MagicHeader {
		return fmt.Errorf("%w: invalid magic", ErrCorrupt)
	}
	if header.Version != Version1 {
		return fmt.Errorf("%w: unsupported version: %d (expected %d)", ErrCorrupt, header.Version, Version1)
	}
	if header.PayloadLen > MaxPayload {
		return fmt.Errorf("%w: payload length %d", ErrCorrupt, header.PayloadLen)
	}
	return nil
}

func readBinary(r io.Reader) ([]byte, SaveFileHeader, error) {
	// 1. Заголовок
	var header SaveFileHeader
	if err := readHeader(r, &header); err != nil {
		return nil, header, err
	}

	// 2. Тело
	payload := make([]byte, header.PayloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, header, fmt.Errorf("%w: failed to read payload: %v", ErrCorrupt, err)
	}
	if crc32.ChecksumIEEE(payload) != header.Checksum {
		return nil, header, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	return payload, header, nil
}
