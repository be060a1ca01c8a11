package contract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-contract/internal/entity"
)

const maxIdentityLength = 256

var (
	ErrUnknownAction   = errors.New("unknown action")
	ErrInvalidPayload  = errors.New("invalid payload")
	ErrInvalidIdentity = errors.New("invalid identity")
)

type sessionManager interface {
	Invite(ctx context.Context, caller, guest string) (*entity.Event, error)
	Accept(ctx context.Context, caller, host string) (*entity.Event, error)
	Reject(ctx context.Context, caller, host string) (*entity.Event, error)
	Play(ctx context.Context, caller, host, guest string, cell int) (*entity.Event, error)

	GetSession(ctx context.Context, host, guest string) (entity.SessionView, error)
	ListSessions(ctx context.Context) ([]entity.SessionView, error)
}

type (
	executeHandler func(ctx context.Context, sender string, payload json.RawMessage) (*entity.Event, error)
	queryHandler   func(ctx context.Context, payload json.RawMessage) (any, error)
)

// Contract - the execute/query entry points. It validates identities, decodes payloads
// and runs one invocation at a time.
type Contract struct {
	logger   *slog.Logger
	sessions sessionManager

	mu sync.Mutex

	executeHandlers map[string]executeHandler
	queryHandlers   map[string]queryHandler
}

func New(logger *slog.Logger, sessions sessionManager) *Contract {
	contract := &Contract{
		logger:   logger.With("component", "contract"),
		sessions: sessions,

		executeHandlers: make(map[string]executeHandler),
		queryHandlers:   make(map[string]queryHandler),
	}

	contract.executeHandlers[ActionInvite] = contract.handleInvite
	contract.executeHandlers[ActionAccept] = contract.handleAccept
	contract.executeHandlers[ActionReject] = contract.handleReject
	contract.executeHandlers[ActionPlay] = contract.handlePlay

	contract.queryHandlers[QueryGames] = contract.handleGames
	contract.queryHandlers[QueryAllGamesList] = contract.handleAllGamesList

	return contract
}

// Instantiate - marks the contract as started. It holds no state of its own.
func (that *Contract) Instantiate(_ context.Context) *entity.Event {
	event := entity.NewEvent(entity.ActionInstantiate)
	that.logger.Info("event", event.LogArgs()...)

	return event
}

// Execute - runs a state-changing message on behalf of sender.
func (that *Contract) Execute(ctx context.Context, sender string, msg Message) (*ExecuteResponse, error) {
	invocation := uuid.NewString()
	log := that.logger.With("method", "Execute", "invocation", invocation, "action", msg.Action, "sender", sender)

	handler, ok := that.executeHandlers[msg.Action]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, msg.Action)
	}

	if err := ValidateIdentity(sender); err != nil {
		return nil, fmt.Errorf("sender: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	event, err := handler(ctx, sender, msg.Payload)
	if err != nil {
		log.Warn("execute failed", "error", err)
		return nil, err
	}

	return &ExecuteResponse{
		Invocation: invocation,
		Attributes: event.Attributes,
	}, nil
}

// Query - runs a read-only message.
func (that *Contract) Query(ctx context.Context, msg Message) (any, error) {
	log := that.logger.With("method", "Query", "invocation", uuid.NewString(), "action", msg.Action)

	handler, ok := that.queryHandlers[msg.Action]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, msg.Action)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	response, err := handler(ctx, msg.Payload)
	if err != nil {
		log.Debug("query failed", "error", err)
		return nil, err
	}

	return response, nil
}

func (that *Contract) handleInvite(ctx context.Context, sender string, payload json.RawMessage) (*entity.Event, error) {
	var req InvitePayload
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	if err := validateIdentities(req.Guest); err != nil {
		return nil, err
	}

	return that.sessions.Invite(ctx, sender, req.Guest)
}

func (that *Contract) handleAccept(ctx context.Context, sender string, payload json.RawMessage) (*entity.Event, error) {
	var req AcceptPayload
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	if err := validateIdentities(req.Host); err != nil {
		return nil, err
	}

	return that.sessions.Accept(ctx, sender, req.Host)
}

func (that *Contract) handleReject(ctx context.Context, sender string, payload json.RawMessage) (*entity.Event, error) {
	var req RejectPayload
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	if err := validateIdentities(req.Host); err != nil {
		return nil, err
	}

	return that.sessions.Reject(ctx, sender, req.Host)
}

func (that *Contract) handlePlay(ctx context.Context, sender string, payload json.RawMessage) (*entity.Event, error) {
	var req PlayPayload
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	if err := validateIdentities(req.Host, req.Guest); err != nil {
		return nil, err
	}

	return that.sessions.Play(ctx, sender, req.Host, req.Guest, req.Cell)
}

func (that *Contract) handleGames(ctx context.Context, payload json.RawMessage) (any, error) {
	var req GamesPayload
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	if err := validateIdentities(req.Host, req.Guest); err != nil {
		return nil, err
	}

	view, err := that.sessions.GetSession(ctx, req.Host, req.Guest)
	if err != nil {
		return nil, err
	}

	return GamesResponse{Info: view}, nil
}

func (that *Contract) handleAllGamesList(ctx context.Context, _ json.RawMessage) (any, error) {
	views, err := that.sessions.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	return AllGamesListResponse{Games: views}, nil
}

// ValidateIdentity - the checks an identity must pass before it reaches the session manager.
func ValidateIdentity(identity string) error {
	switch {
	case identity == "":
		return fmt.Errorf("%w: empty", ErrInvalidIdentity)
	case len(identity) > maxIdentityLength:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidIdentity, maxIdentityLength)
	case strings.TrimSpace(identity) != identity:
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidIdentity, identity)
	case strings.ContainsRune(identity, 0):
		return fmt.Errorf("%w: contains a NUL byte", ErrInvalidIdentity)
	}

	return nil
}

func validateIdentities(identities ...string) error {
	for _, identity := range identities {
		if err := ValidateIdentity(identity); err != nil {
			return err
		}
	}

	return nil
}

func decodePayload(payload json.RawMessage, dst any) error {
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	return nil
}
