package storage

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	MagicHeader string = `GCSV` // 4 байта
	Version1    uint32 = 1

	// MaxPayload - ограничение на размер записи, чтобы битый заголовок не заставил читать гигабайты
	MaxPayload = 64 << 20

	slotExt = ".gcsv"
)

// SaveFileHeader - точное представление заголовка файла в памяти.
// binary.Write пишет его целиком: тут только массивы и числа.
type SaveFileHeader struct {
	Magic      [4]byte // 4 байта
	Version    uint32  // 4 байта
	Timestamp  int64   // 8 байт
	PayloadLen uint32  // 4 байта
	Checksum   uint32  // 4 байта, CRC32 (IEEE) от payload
}

// FileStore хранит каждый слот отдельным файлом в каталоге Dir
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{Dir: dir}, nil
}

func (s *FileStore) path(slot string) string {
	return filepath.Join(s.Dir, slot+slotExt)
}

// Save записывает слот атомарно: во временный файл, затем rename.
// Прерванная запись не портит предыдущее сохранение.
func (s *FileStore) Save(ctx context.Context, slot string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validSlot(slot); err != nil {
		return err
	}
	if len(payload) > MaxPayload {
		return fmt.Errorf("payload too long: %d", len(payload))
	}

	tmp, err := os.CreateTemp(s.Dir, slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // после rename ничего не удалит

	if err := writeBinary(tmp, payload, time.Now().Unix()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path(slot)); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Close ничего не держит открытым
func (s *FileStore) Close() error {
	return nil
}

func writeBinary(w io.Writer, payload []byte, timestamp int64) error {
	// 1. Заголовок
	header := SaveFileHeader{
		Version:    Version1,
		Timestamp:  timestamp,
		PayloadLen: uint32(len(payload)),
		Checksum:   crc32.ChecksumIEEE(payload),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Тело
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	return nil
}
