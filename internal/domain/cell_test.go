package domain

import (
	"errors"
	"testing"
)

func TestCheckCellIndex(t *testing.T) {
	tests := []struct {
		name    string
		i, j    int
		wantErr bool
	}{
		{"start cell", 369894, -1220628, false},
		{"int32 edges", -2147483648, 2147483647, false},
		{"i aliases zero", 1 << 32, 0, true},
		{"j past max", 0, 2147483648, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCellIndex(tt.i, tt.j)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckCellIndex(%d,%d) error = %v, wantErr %v", tt.i, tt.j, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrCellOutOfRange) {
				t.Errorf("error %v is not ErrCellOutOfRange", err)
			}
		})
	}
}
