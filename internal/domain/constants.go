package domain

// Параметры мира по умолчанию.
// Шаг сетки обязан оставаться неизменным в пределах одного сохранения:
// другой шаг даёт другие ячейки и "теряет" все кэши.
const (
	DefaultTileDegrees      = 1e-4
	DefaultNeighborhoodSize = 8
	DefaultSpawnProbability = 0.1
	DefaultMaxInitialCoins  = 3
)

// Стартовая точка - аудитория в Oakes College, UC Santa Cruz
const (
	DefaultStartLat = 36.98949379578401
	DefaultStartLng = -122.06277128548504
)

// Суффикс ключа удачи для начального количества монет: "i,j|initial"
const InitialCoinsKeySuffix = "|initial"

// Типы записей лога
const (
	LogInfo  = "INFO"
	LogError = "ERROR"
	LogTrade = "TRADE"
)
