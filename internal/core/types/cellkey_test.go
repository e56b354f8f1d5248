package types

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestCellKey_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		i, j int
	}{
		{"Origin", 0, 0},
		{"Positive", 369894, 12},
		{"Negative J", 369894, -1220628},
		{"Both negative", -5, -7},
		{"Min int32", -2147483648, 0},
		{"Max int32", 2147483647, 2147483647},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := PackCellKey(tt.i, tt.j)
			if k.I() != tt.i || k.J() != tt.j {
				t.Errorf("PackCellKey(%d,%d) unpacked to (%d,%d)", tt.i, tt.j, k.I(), k.J())
			}
		})
	}
}

func TestCellKey_Distinct(t *testing.T) {
	// Транспонированные индексы не должны давать один ключ
	if PackCellKey(1, 2) == PackCellKey(2, 1) {
		t.Error("(1,2) and (2,1) packed to the same key")
	}
	// -1 по J не должен "протекать" в I
	if PackCellKey(0, -1).I() != 0 {
		t.Error("negative J leaked into I")
	}
}

func TestInRange(t *testing.T) {
	tests := []struct {
		name string
		i, j int
		want bool
	}{
		{"Origin", 0, 0, true},
		{"Int32 edges", -2147483648, 2147483647, true},
		{"I past max", 2147483648, 0, false},
		{"J below min", 0, -2147483649, false},
		{"Aliases origin", 1 << 32, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InRange(tt.i, tt.j); got != tt.want {
				t.Errorf("InRange(%d,%d) = %v, want %v", tt.i, tt.j, got, tt.want)
			}
		})
	}
}

func TestCellKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  CellKey
		want string
	}{
		{"Origin", PackCellKey(0, 0), "0,0"},
		{"Mixed", PackCellKey(369894, -1220628), "369894,-1220628"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCellKey_JSON(t *testing.T) {
	k := PackCellKey(-3, 4)

	data, err := json.Marshal(k)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte(`"`)) {
		t.Errorf("expected quoted number, got %s", data)
	}

	var back CellKey
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if back != k {
		t.Errorf("round trip = %v, want %v", back, k)
	}

	// Числовая форма тоже принимается
	var num CellKey
	if err := json.Unmarshal([]byte("42"), &num); err != nil {
		t.Fatalf("Unmarshal numeric error: %v", err)
	}
	if num != CellKey(42) {
		t.Errorf("numeric = %d, want 42", num)
	}
}

var sinkKey CellKey

func BenchmarkPackCellKey(b *testing.B) {
	for n := 0; n < b.N; n++ {
		sinkKey = PackCellKey(n, -n)
	}
}
