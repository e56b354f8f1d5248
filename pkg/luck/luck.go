// Package luck - детерминированный генератор "удачи" для процедурного мира.
//
// Никакого math/rand и никакого внешнего сида: одинаковый ключ даёт одинаковое
// значение в любом процессе и после любого перезапуска. На этом держится
// воспроизводимость расстановки кэшей и начального количества монет.
package luck

import "github.com/cespare/xxhash/v2"

// mantissaBits - сколько старших бит хеша идёт в дробь.
// float64 точно представляет целые до 2^53, поэтому результат строго < 1.
const mantissaBits = 53

// Luck отображает произвольный ключ в число из [0, 1).
func Luck(key string) float64 {
	h := xxhash.Sum64String(key)
	return float64(h>>(64-mantissaBits)) / float64(uint64(1)<<mantissaBits)
}

// Below сообщает, выпал ли шанс p для ключа.
// Используется для решения о спавне: Below("i,j", 0.1).
func Below(key string, p float64) bool {
	return Luck(key) < p
}

// Intn возвращает детерминированное целое из [0, n). При n <= 0 возвращает 0.
func Intn(key string, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(Luck(key) * float64(n))
	// Защита от округления на самой границе
	if v >= n {
		v = n - 1
	}
	return v
}
