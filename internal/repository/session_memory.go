package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/rocketscienceinc/tictactoe-contract/internal/entity"
)

// memorySession - an in-process SessionRepository. Records are kept encoded so that
// callers never share memory with what is stored.
type memorySession struct {
	mu       sync.RWMutex
	sessions map[entity.SessionKey][]byte
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySession{
		sessions: make(map[entity.SessionKey][]byte),
	}
}

func (that *memorySession) CreateOrUpdate(_ context.Context, key entity.SessionKey, session *entity.Session) error {
	if _, err := encodeKey(key); err != nil {
		return err
	}

	sessionJSON, err := marshalSession(session)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[key] = sessionJSON

	return nil
}

func (that *memorySession) GetByKey(_ context.Context, key entity.SessionKey) (*entity.Session, error) {
	that.mu.RLock()
	data, ok := that.sessions[key]
	that.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	return unmarshalSession(data)
}

func (that *memorySession) List(_ context.Context) ([]entity.SessionRecord, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	keys := make([]entity.SessionKey, 0, len(that.sessions))
	for key := range that.sessions {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Host != keys[j].Host {
			return keys[i].Host < keys[j].Host
		}
		return keys[i].Guest < keys[j].Guest
	})

	records := make([]entity.SessionRecord, 0, len(keys))
	for _, key := range keys {
		session, err := unmarshalSession(that.sessions[key])
		if err != nil {
			return nil, err
		}

		records = append(records, entity.SessionRecord{Key: key, Session: session})
	}

	return records, nil
}
