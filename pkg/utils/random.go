package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// MaxSessionIDLen - длиннее токен клиента не принимаем
const MaxSessionIDLen = 64

// GenerateID создает идентификатор сессии для клиента без токена
func GenerateID() string {
	b := make([]byte, 8) // 16 символов hex
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate random ID: " + err.Error())
	}
	return "guest-" + hex.EncodeToString(b)
}

// ValidSessionID проверяет токен из handshake.
// Разрешены латиница, цифры, '-', '_' и '.'; токен попадает в логи и ключи хаба.
func ValidSessionID(id string) bool {
	if id == "" || len(id) > MaxSessionIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

// SessionIDOrNew возвращает токен клиента или новый ID, если токен негоден
func SessionIDOrNew(token string) string {
	if ValidSessionID(token) {
		return token
	}
	return GenerateID()
}
