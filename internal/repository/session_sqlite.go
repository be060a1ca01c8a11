package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/rocketscienceinc/tictactoe-contract/internal/entity"
)

var (
	ErrInvalidNamespace = errors.New("invalid storage namespace")

	namespacePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// sqliteSession - one row per session. TEXT columns compare with the BINARY
// collation, so ORDER BY host, guest is byte order.
type sqliteSession struct {
	db    *sql.DB
	table string
}

func NewSQLiteSessionRepository(ctx context.Context, db *sql.DB, namespace string) (SessionRepository, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	if !namespacePattern.MatchString(namespace) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNamespace, namespace)
	}

	repo := &sqliteSession{db: db, table: namespace}
	if err := repo.migrate(ctx); err != nil {
		return nil, err
	}

	return repo, nil
}

func (that *sqliteSession) migrate(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		host   TEXT NOT NULL,
		guest  TEXT NOT NULL,
		record TEXT NOT NULL,
		PRIMARY KEY (host, guest)
	)`, that.table)

	if _, err := that.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}

func (that *sqliteSession) CreateOrUpdate(ctx context.Context, key entity.SessionKey, session *entity.Session) error {
	if _, err := encodeKey(key); err != nil {
		return err
	}

	sessionJSON, err := marshalSession(session)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (host, guest, record) VALUES (?, ?, ?)
		ON CONFLICT (host, guest) DO UPDATE SET record = excluded.record`, that.table)

	if _, err = that.db.ExecContext(ctx, query, key.Host, key.Guest, string(sessionJSON)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (that *sqliteSession) GetByKey(ctx context.Context, key entity.SessionKey) (*entity.Session, error) {
	query := fmt.Sprintf(`SELECT record FROM %s WHERE host = ? AND guest = ?`, that.table)

	var record string
	err := that.db.QueryRowContext(ctx, query, key.Host, key.Guest).Scan(&record)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session by key: %w", err)
	}

	return unmarshalSession([]byte(record))
}

func (that *sqliteSession) List(ctx context.Context) ([]entity.SessionRecord, error) {
	query := fmt.Sprintf(`SELECT host, guest, record FROM %s ORDER BY host, guest`, that.table)

	rows, err := that.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	records := make([]entity.SessionRecord, 0)
	for rows.Next() {
		var key entity.SessionKey
		var record string

		if err = rows.Scan(&key.Host, &key.Guest, &record); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}

		session, err := unmarshalSession([]byte(record))
		if err != nil {
			return nil, err
		}

		records = append(records, entity.SessionRecord{Key: key, Session: session})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return records, nil
}
