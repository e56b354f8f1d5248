package luck

import (
	"fmt"
	"testing"
)

func TestLuck_Range(t *testing.T) {
	for i := -50; i < 50; i++ {
		for j := -50; j < 50; j++ {
			v := Luck(fmt.Sprintf("%d,%d", i, j))
			if v < 0 || v >= 1 {
				t.Fatalf("Luck(%d,%d) = %v, want [0,1)", i, j, v)
			}
		}
	}
}

func TestLuck_Deterministic(t *testing.T) {
	keys := []string{"", "0,0", "0,0|initial", "-1,7", "369894,-1220628"}

	for _, k := range keys {
		t.Run(k, func(t *testing.T) {
			first := Luck(k)
			for n := 0; n < 10; n++ {
				if got := Luck(k); got != first {
					t.Fatalf("Luck(%q) changed between calls: %v != %v", k, got, first)
				}
			}
		})
	}
}

// Значения зафиксированы: от них зависят расстановка кэшей и все сохранения.
// Смена хеша или формата ключа должна уронить этот тест.
func TestLuck_Golden(t *testing.T) {
	tests := []struct {
		key  string
		want float64
	}{
		{"0,0", 0.2548523431903431},
		{"0,0|initial", 0.8089739325251935},
		{"0,1", 0.013905464819728097},
		{"1,2", 0.12515430049741738},
		{"5,-2|initial", 0.26727454538440254},
		{"369894,-1220628", 0.5227393742905985},
		{"369894,-1220628|initial", 0.8368903420689354},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := Luck(tt.key); got != tt.want {
				t.Errorf("Luck(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestLuck_DistinctKeysDiffer(t *testing.T) {
	if Luck("0,0") == Luck("0,0|initial") {
		t.Error("spawn key and initial key should not collide")
	}
	if Luck("1,2") == Luck("2,1") {
		t.Error("transposed keys should not collide")
	}
}

// Грубая проверка распределения: доля спавнов при p=0.1 должна быть около 10%.
func TestBelow_Distribution(t *testing.T) {
	hits := 0
	total := 0
	for i := 0; i < 200; i++ {
		for j := 0; j < 200; j++ {
			total++
			if Below(fmt.Sprintf("%d,%d", i, j), 0.1) {
				hits++
			}
		}
	}

	ratio := float64(hits) / float64(total)
	if ratio < 0.08 || ratio > 0.12 {
		t.Errorf("spawn ratio = %.4f, expected about 0.10", ratio)
	}
}

func TestIntn(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{name: "three", n: 3},
		{name: "one", n: 1},
		{name: "large", n: 1 << 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 500; i++ {
				v := Intn(fmt.Sprintf("k%d", i), tt.n)
				if v < 0 || v >= tt.n {
					t.Fatalf("Intn = %d, want [0,%d)", v, tt.n)
				}
			}
		})
	}

	if got := Intn("any", 0); got != 0 {
		t.Errorf("Intn(n=0) = %d, want 0", got)
	}
}
