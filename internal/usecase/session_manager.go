package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-contract/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-contract/internal/entity"
)

type sessionRepo interface {
	GetByKey(ctx context.Context, key entity.SessionKey) (*entity.Session, error)
	CreateOrUpdate(ctx context.Context, key entity.SessionKey, session *entity.Session) error
	List(ctx context.Context) ([]entity.SessionRecord, error)
}

// SessionManager - drives the invitation and round lifecycle of (host, guest) sessions.
// Every method loads one record, changes it in memory and saves it once at the end,
// so a failed call leaves the store untouched.
type SessionManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
}

func NewSessionManager(logger *slog.Logger, sessionRepo sessionRepo) *SessionManager {
	return &SessionManager{
		logger:      logger.With("component", "session-manager"),
		sessionRepo: sessionRepo,
	}
}

// Invite - caller invites guest. Re-inviting is allowed unless a round is running.
func (that *SessionManager) Invite(ctx context.Context, caller, guest string) (*entity.Event, error) {
	key := entity.NewSessionKey(caller, guest)

	session, err := that.sessionRepo.GetByKey(ctx, key)

	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		session = entity.NewSession(key)
	case err != nil:
		return nil, fmt.Errorf("failed to get session: %w", err)
	case session.HasGameInProgress():
		return nil, apperror.NewSessionError(apperror.ErrGameInProgress, caller, guest)
	default:
		session.PendingInvitation = true
	}

	if err = that.saveSession(ctx, key, session); err != nil {
		return nil, err
	}

	return that.emit(entity.NewSessionEvent(entity.ActionInvite, key)), nil
}

// Accept - caller accepts the invitation sent by host and starts a new round.
func (that *SessionManager) Accept(ctx context.Context, caller, host string) (*entity.Event, error) {
	key := entity.NewSessionKey(host, caller)

	session, err := that.getPendingSession(ctx, key)
	if err != nil {
		return nil, err
	}

	game := entity.NewGame()
	session.PendingInvitation = false
	session.Current = &game

	if err = that.saveSession(ctx, key, session); err != nil {
		return nil, err
	}

	return that.emit(entity.NewSessionEvent(entity.ActionAccept, key)), nil
}

// Reject - caller declines the invitation sent by host.
func (that *SessionManager) Reject(ctx context.Context, caller, host string) (*entity.Event, error) {
	key := entity.NewSessionKey(host, caller)

	session, err := that.getPendingSession(ctx, key)
	if err != nil {
		return nil, err
	}

	session.PendingInvitation = false

	if err = that.saveSession(ctx, key, session); err != nil {
		return nil, err
	}

	return that.emit(entity.NewSessionEvent(entity.ActionReject, key)), nil
}

// Play - caller marks cell in the round between host and guest.
// A missing round is reported before checking that the caller takes part.
func (that *SessionManager) Play(ctx context.Context, caller, host, guest string, cell int) (*entity.Event, error) {
	key := entity.NewSessionKey(host, guest)

	session, err := that.getSession(ctx, key)
	if err != nil {
		return nil, err
	}

	if !session.HasGameInProgress() {
		return nil, apperror.NewSessionError(apperror.ErrNoGameInProgress, host, guest)
	}

	var symbol entity.Symbol
	switch caller {
	case host:
		symbol = session.Host
	case guest:
		symbol = session.Guest()
	default:
		return nil, &apperror.SessionError{Err: apperror.ErrNotInvolved, Host: host, Guest: guest, Player: caller}
	}

	if err = session.Current.MakeTurn(symbol, cell); err != nil {
		return nil, &apperror.SessionError{Err: err, Host: host, Guest: guest, Player: caller}
	}

	if session.Current.IsOver() {
		that.logRoundResult(key, *session.Current)
		session.Archive()
	}

	if err = that.saveSession(ctx, key, session); err != nil {
		return nil, err
	}

	return that.emit(entity.NewPlayEvent(key, cell)), nil
}

func (that *SessionManager) getSession(ctx context.Context, key entity.SessionKey) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByKey(ctx, key)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		return nil, apperror.NewSessionError(apperror.ErrSessionNotFound, key.Host, key.Guest)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (that *SessionManager) getPendingSession(ctx context.Context, key entity.SessionKey) (*entity.Session, error) {
	session, err := that.getSession(ctx, key)
	if err != nil {
		return nil, err
	}

	if !session.PendingInvitation {
		return nil, apperror.NewSessionError(apperror.ErrNoPendingInvitation, key.Host, key.Guest)
	}

	return session, nil
}

func (that *SessionManager) saveSession(ctx context.Context, key entity.SessionKey, session *entity.Session) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, key, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (that *SessionManager) emit(event *entity.Event) *entity.Event {
	that.logger.Info("event", event.LogArgs()...)
	return event
}

func (that *SessionManager) logRoundResult(key entity.SessionKey, game entity.Game) {
	log := that.logger.With("method", "Play", "host", key.Host, "guest", key.Guest)

	if winner, ok := game.Winner(); ok {
		log.Debug("round won", "winner", string(winner))
		return
	}

	log.Debug("round drawn")
}
