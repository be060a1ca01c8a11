package usecase

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-contract/internal/entity"
)

// GetSession - the view of the session stored under the exact (host, guest) pair.
func (that *SessionManager) GetSession(ctx context.Context, host, guest string) (entity.SessionView, error) {
	key := entity.NewSessionKey(host, guest)

	session, err := that.getSession(ctx, key)
	if err != nil {
		return entity.SessionView{}, err
	}

	return entity.NewSessionView(key, session), nil
}

// ListSessions - views of every stored session, ascending by host then guest.
func (that *SessionManager) ListSessions(ctx context.Context) ([]entity.SessionView, error) {
	records, err := that.sessionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	views := make([]entity.SessionView, 0, len(records))
	for _, record := range records {
		views = append(views, entity.NewSessionView(record.Key, record.Session))
	}

	return views, nil
}
