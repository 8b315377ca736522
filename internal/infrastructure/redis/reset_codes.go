package redis

import (
	"context"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/pecas-api/internal/application/auth"
)

const resetKeyPrefix = "pecas:reset:"

var _ auth.ResetCodeStore = (*ResetCodeStore)(nil)

// ResetCodeStore guarda cada código como hash con expiración; Redis lo borra al vencer.
type ResetCodeStore struct {
	rdb goredis.UniversalClient
}

// NewResetCodeStore construye el store.
func NewResetCodeStore(rdb goredis.UniversalClient) *ResetCodeStore {
	return &ResetCodeStore{rdb: rdb}
}

func resetKey(email string) string {
	return resetKeyPrefix + strings.ToLower(email)
}

// Save reemplaza el código anterior del email.
func (s *ResetCodeStore) Save(ctx context.Context, email string, code auth.ResetCode, ttl time.Duration) error {
	key := resetKey(email)
	_, err := s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, "code", code.Code, "user_id", strconv.FormatInt(code.UserID, 10))
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

func (s *ResetCodeStore) Get(ctx context.Context, email string) (*auth.ResetCode, error) {
	vals, err := s.rdb.HGetAll(ctx, resetKey(email)).Result()
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, nil
	}
	userID, err := strconv.ParseInt(vals["user_id"], 10, 64)
	if err != nil {
		return nil, nil
	}
	return &auth.ResetCode{Code: vals["code"], UserID: userID}, nil
}

func (s *ResetCodeStore) Delete(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, resetKey(email)).Err()
}
