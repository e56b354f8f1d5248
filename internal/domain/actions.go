package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionMove     // Шаг на одну ячейку (кнопки север/юг/запад/восток)
	ActionPosition // Абсолютная позиция от геолокации
	ActionCollect
	ActionDeposit
	ActionReset
	ActionSave
	ActionLoad
	ActionTeleport // Админ: перенос в центр ячейки
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":     ActionInit,
	"MOVE":     ActionMove,
	"POSITION": ActionPosition,
	"COLLECT":  ActionCollect,
	"DEPOSIT":  ActionDeposit,
	"RESET":    ActionReset,
	"SAVE":     ActionSave,
	"LOAD":     ActionLoad,
	"TELEPORT": ActionTeleport,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:     "INIT",
	ActionMove:     "MOVE",
	ActionPosition: "POSITION",
	ActionCollect:  "COLLECT",
	ActionDeposit:  "DEPOSIT",
	ActionReset:    "RESET",
	ActionSave:     "SAVE",
	ActionLoad:     "LOAD",
	ActionTeleport: "TELEPORT",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
