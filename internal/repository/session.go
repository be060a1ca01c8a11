package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-contract/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-contract/internal/entity"
)

const DefaultNamespace = "games"

var (
	// ErrSessionNotFound - returned by GetByKey when nothing is stored under the key.
	ErrSessionNotFound = apperror.ErrSessionNotFound

	ErrCorruptRecord = errors.New("corrupt session record")
)

// SessionRepository - ordered storage of sessions keyed by (host, guest).
type SessionRepository interface {
	GetByKey(ctx context.Context, key entity.SessionKey) (*entity.Session, error)
	CreateOrUpdate(ctx context.Context, key entity.SessionKey, session *entity.Session) error
	// List - every session in ascending (host, guest) order.
	List(ctx context.Context) ([]entity.SessionRecord, error)
}

func marshalSession(session *entity.Session) ([]byte, error) {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("could not marshal session: %w", err)
	}

	return sessionJSON, nil
}

func unmarshalSession(data []byte) (*entity.Session, error) {
	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if !session.Host.IsPlayer() {
		return nil, fmt.Errorf("%w: host symbol %q", ErrCorruptRecord, session.Host)
	}

	if session.Completed == nil {
		session.Completed = []entity.Game{}
	}

	return &session, nil
}
