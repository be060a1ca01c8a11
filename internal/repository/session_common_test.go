package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/tictactoe-contract/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSessionRepository - behavior every SessionRepository implementation must share.
func testSessionRepository(ctx context.Context, t *testing.T, newRepo func(t *testing.T) SessionRepository) {
	t.Helper()

	t.Run("GetByKey_NotFound", func(t *testing.T) {
		repo := newRepo(t)

		// When: GetByKey is called for a pair that was never saved
		session, err := repo.GetByKey(ctx, entity.NewSessionKey("alice", "bob"))

		// Then: ErrSessionNotFound is returned
		require.ErrorIs(t, err, ErrSessionNotFound)
		assert.Nil(t, session)
	})

	t.Run("CreateOrUpdate_RoundTrip", func(t *testing.T) {
		repo := newRepo(t)
		key := entity.NewSessionKey("alice", "bob")

		// Given: a session with a round in progress and one in history
		game := entity.NewGame()
		require.NoError(t, game.MakeTurn(entity.PlayerX, 4))
		session := &entity.Session{
			PendingInvitation: false,
			Host:              entity.PlayerO,
			Current:           &game,
			Completed: []entity.Game{{
				Board: [9]entity.Symbol{entity.PlayerX, entity.PlayerX, entity.PlayerX, entity.PlayerO, entity.PlayerO},
				Turn:  entity.PlayerO,
			}},
		}

		// When: it is saved and read back
		require.NoError(t, repo.CreateOrUpdate(ctx, key, session))
		stored, err := repo.GetByKey(ctx, key)

		// Then: the record is identical
		require.NoError(t, err)
		assert.Equal(t, session, stored)
	})

	t.Run("CreateOrUpdate_Overwrites", func(t *testing.T) {
		repo := newRepo(t)
		key := entity.NewSessionKey("alice", "bob")

		// Given: a stored pending session
		session := entity.NewSession(key)
		require.NoError(t, repo.CreateOrUpdate(ctx, key, session))

		// When: the invitation is accepted and saved again
		game := entity.NewGame()
		session.PendingInvitation = false
		session.Current = &game
		require.NoError(t, repo.CreateOrUpdate(ctx, key, session))

		// Then: the latest state is returned and only one record exists
		stored, err := repo.GetByKey(ctx, key)
		require.NoError(t, err)
		assert.False(t, stored.PendingInvitation)
		assert.Equal(t, &game, stored.Current)

		records, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("Stored records are detached from the caller", func(t *testing.T) {
		repo := newRepo(t)
		key := entity.NewSessionKey("alice", "bob")

		session := entity.NewSession(key)
		require.NoError(t, repo.CreateOrUpdate(ctx, key, session))

		// When: the caller keeps mutating its copy without saving
		session.PendingInvitation = false

		// Then: the stored record is unaffected
		stored, err := repo.GetByKey(ctx, key)
		require.NoError(t, err)
		assert.True(t, stored.PendingInvitation)
	})

	t.Run("Ordered pairs are distinct", func(t *testing.T) {
		repo := newRepo(t)

		require.NoError(t, repo.CreateOrUpdate(ctx, entity.NewSessionKey("alice", "bob"), &entity.Session{Host: entity.PlayerX, PendingInvitation: true}))

		_, err := repo.GetByKey(ctx, entity.NewSessionKey("bob", "alice"))
		require.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("List_Empty", func(t *testing.T) {
		repo := newRepo(t)

		records, err := repo.List(ctx)

		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("List_AscendingKeyOrder", func(t *testing.T) {
		repo := newRepo(t)

		// Given: sessions saved out of order, including a host that is a prefix of another
		keys := []entity.SessionKey{
			entity.NewSessionKey("bob", "alice"),
			entity.NewSessionKey("alice", "carol"),
			entity.NewSessionKey("alicia", "aaron"),
			entity.NewSessionKey("alice", "bob"),
			entity.NewSessionKey("Zed", "alice"),
		}
		for _, key := range keys {
			require.NoError(t, repo.CreateOrUpdate(ctx, key, entity.NewSession(key)))
		}

		// When: listing everything
		records, err := repo.List(ctx)
		require.NoError(t, err)

		// Then: records come back by host, then guest
		got := make([]entity.SessionKey, 0, len(records))
		for _, record := range records {
			got = append(got, record.Key)
			assert.Equal(t, entity.HostSymbolFor(record.Key.Host, record.Key.Guest), record.Session.Host)
		}

		expected := []entity.SessionKey{
			entity.NewSessionKey("Zed", "alice"),
			entity.NewSessionKey("alice", "bob"),
			entity.NewSessionKey("alice", "carol"),
			entity.NewSessionKey("alicia", "aaron"),
			entity.NewSessionKey("bob", "alice"),
		}
		assert.Equal(t, expected, got)
	})
}
