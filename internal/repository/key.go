package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-contract/internal/entity"
)

const keySeparator = "\x00"

var ErrMalformedKey = errors.New("malformed session key")

// encodeKey - joins host and guest so that byte order of the result equals (host, guest) tuple order.
// Identities must not contain the separator.
func encodeKey(key entity.SessionKey) (string, error) {
	if strings.Contains(key.Host, keySeparator) || strings.Contains(key.Guest, keySeparator) {
		return "", fmt.Errorf("%w: identity contains a NUL byte", ErrMalformedKey)
	}

	return key.Host + keySeparator + key.Guest, nil
}

func decodeKey(raw string) (entity.SessionKey, error) {
	host, guest, ok := strings.Cut(raw, keySeparator)
	if !ok {
		return entity.SessionKey{}, fmt.Errorf("%w: %q", ErrMalformedKey, raw)
	}

	return entity.NewSessionKey(host, guest), nil
}
