package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-contract/internal/entity"
)

const listBatchSize = 256

var ErrDanglingIndex = errors.New("session index points to a missing record")

// dbSession - stores records in the hash <namespace> and keeps every field in the
// sorted set <namespace>:keys with score 0, so ZRANGE BYLEX walks them in key order.
type dbSession struct {
	client    *redis.Client
	namespace string
}

func NewSessionRepository(client *redis.Client, namespace string) SessionRepository {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	return &dbSession{
		client:    client,
		namespace: namespace,
	}
}

func (that *dbSession) indexKey() string {
	return that.namespace + ":keys"
}

func (that *dbSession) CreateOrUpdate(ctx context.Context, key entity.SessionKey, session *entity.Session) error {
	field, err := encodeKey(key)
	if err != nil {
		return err
	}

	sessionJSON, err := marshalSession(session)
	if err != nil {
		return err
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, that.namespace, field, sessionJSON)
		pipe.ZAdd(ctx, that.indexKey(), redis.Z{Score: 0, Member: field})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

func (that *dbSession) GetByKey(ctx context.Context, key entity.SessionKey) (*entity.Session, error) {
	field, err := encodeKey(key)
	if err != nil {
		return nil, err
	}

	response, err := that.client.HGet(ctx, that.namespace, field).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session by key: %w", err)
	}

	return unmarshalSession([]byte(response))
}

func (that *dbSession) List(ctx context.Context) ([]entity.SessionRecord, error) {
	fields, err := that.client.ZRangeByLex(ctx, that.indexKey(), &redis.ZRangeBy{Min: "-", Max: "+"}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read session index: %w", err)
	}

	records := make([]entity.SessionRecord, 0, len(fields))

	for start := 0; start < len(fields); start += listBatchSize {
		end := min(start+listBatchSize, len(fields))
		batch := fields[start:end]

		values, err := that.client.HMGet(ctx, that.namespace, batch...).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get sessions: %w", err)
		}

		for i, value := range values {
			raw, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrDanglingIndex, batch[i])
			}

			key, err := decodeKey(batch[i])
			if err != nil {
				return nil, err
			}

			session, err := unmarshalSession([]byte(raw))
			if err != nil {
				return nil, err
			}

			records = append(records, entity.SessionRecord{Key: key, Session: session})
		}
	}

	return records, nil
}
