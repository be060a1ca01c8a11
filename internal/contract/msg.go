package contract

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-contract/internal/entity"
)

const (
	ActionInvite = "invite"
	ActionAccept = "accept"
	ActionReject = "reject"
	ActionPlay   = "play"

	QueryGames        = "games"
	QueryAllGamesList = "all_games_list"
)

// Message - an execute or query call: the action name selects the handler, the payload
// holds its arguments.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type InvitePayload struct {
	Guest string `json:"guest"`
}

type AcceptPayload struct {
	Host string `json:"host"`
}

type RejectPayload struct {
	Host string `json:"host"`
}

type PlayPayload struct {
	Host  string `json:"host"`
	Guest string `json:"guest"`
	Cell  int    `json:"cell"`
}

type GamesPayload struct {
	Host  string `json:"host"`
	Guest string `json:"guest"`
}

type GamesResponse struct {
	Info entity.SessionView `json:"info"`
}

type AllGamesListResponse struct {
	Games []entity.SessionView `json:"games"`
}

// ExecuteResponse - what a successful execute call returns to the caller.
type ExecuteResponse struct {
	Invocation string             `json:"invocation"`
	Attributes []entity.Attribute `json:"attributes"`
}

// NewMessage - builds a message from an action and a payload value.
func NewMessage(action string, payload any) (Message, error) {
	if payload == nil {
		return Message{Action: action}, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	return Message{Action: action, Payload: raw}, nil
}
