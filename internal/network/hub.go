package network

import (
	"geocache-server/pkg/api"
	"sync"
)

// Broadcaster занимается только рассылкой сообщений подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: SessionID -> Личный канал
	subscribers map[string]chan api.ServerResponse
	bufferSize  int
}

func NewBroadcaster() *Broadcaster {
	return NewBroadcasterSize(100)
}

// NewBroadcasterSize задает емкость личных каналов
func NewBroadcasterSize(size int) *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
		bufferSize:  size,
	}
}

// Register создает личный канал для сессии (игрока, бота, терминала)
func (b *Broadcaster) Register(sessionID string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Повторное подключение с тем же ID вытесняет старое
	if old, ok := b.subscribers[sessionID]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, b.bufferSize)
	b.subscribers[sessionID] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[sessionID]; ok {
		close(ch)
		delete(b.subscribers, sessionID)
	}
}

// UnregisterChan удаляет подписчика, только если канал все еще его.
// Старое соединение не должно отписать новое с тем же ID.
func (b *Broadcaster) UnregisterChan(sessionID string, ch chan api.ServerResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cur, ok := b.subscribers[sessionID]; ok && cur == ch {
		close(cur)
		delete(b.subscribers, sessionID)
	}
}

// SendTo отправляет сообщение конкретной сессии (Unicast).
// Медленный подписчик пропускает сообщение, цикл игры не ждет.
func (b *Broadcaster) SendTo(sessionID string, msg api.ServerResponse) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[sessionID]; ok {
		select {
		case ch <- msg:
			return true
		default:
		}
	}
	return false
}

// Broadcast отправляет всем. SessionID в каждой копии проставляется адресату.
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		m := msg
		m.SessionID = id
		select {
		case ch <- m:
		default:
		}
	}
}

// HasSubscriber проверяет, подключена ли сессия
func (b *Broadcaster) HasSubscriber(sessionID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[sessionID]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
