package entity

import (
	"github.com/cespare/xxhash/v2"
)

// SessionKey - the ordered (host, guest) pair a session is stored under.
type SessionKey struct {
	Host  string `json:"host"`
	Guest string `json:"guest"`
}

func NewSessionKey(host, guest string) SessionKey {
	return SessionKey{Host: host, Guest: guest}
}

// Session - the persisted relationship between a host and a guest.
type Session struct {
	PendingInvitation bool   `json:"pending_invitation"`
	Host              Symbol `json:"host"`
	Current           *Game  `json:"current"`
	Completed         []Game `json:"completed"`
}

// NewSession - a session with a pending invitation and the host symbol derived from the key.
func NewSession(key SessionKey) *Session {
	return &Session{
		PendingInvitation: true,
		Host:              HostSymbolFor(key.Host, key.Guest),
		Current:           nil,
		Completed:         []Game{},
	}
}

func (that *Session) Guest() Symbol {
	return that.Host.Opponent()
}

func (that *Session) HasGameInProgress() bool {
	return that.Current != nil
}

// Archive - moves the current round into the history by value.
func (that *Session) Archive() {
	if that.Current == nil {
		return
	}

	that.Completed = append(that.Completed, *that.Current)
	that.Current = nil
}

// HostSymbolFor - derives the host's symbol from the low bit of xxhash64(host + guest).
func HostSymbolFor(host, guest string) Symbol {
	if xxhash.Sum64String(host+guest)&1 == 0 {
		return PlayerX
	}

	return PlayerO
}

// SessionView - the query projection of a session.
type SessionView struct {
	Host              string `json:"host"`
	Guest             string `json:"guest"`
	HostRole          Symbol `json:"host_role"`
	GuestRole         Symbol `json:"guest_role"`
	PendingInvitation bool   `json:"pending_invitation"`
	CurrentGame       *Game  `json:"current_game"`
	CompletedGames    []Game `json:"completed_games"`
}

func NewSessionView(key SessionKey, session *Session) SessionView {
	completed := session.Completed
	if completed == nil {
		completed = []Game{}
	}

	return SessionView{
		Host:              key.Host,
		Guest:             key.Guest,
		HostRole:          session.Host,
		GuestRole:         session.Guest(),
		PendingInvitation: session.PendingInvitation,
		CurrentGame:       session.Current,
		CompletedGames:    completed,
	}
}

// SessionRecord - a stored session together with its key, as returned by a full scan.
type SessionRecord struct {
	Key     SessionKey
	Session *Session
}
