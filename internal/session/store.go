// Package session implements the redis-backed session store. Tokens are
// opaque uuids handed to the client at login; the stored payload carries the
// fields the access gate needs so protected requests cost one redis GET.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Data is the payload stored per session token.
type Data struct {
	UserID   string `json:"uid"`
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	TipoUser string `json:"tipo_user"`
	IssuedAt int64  `json:"iat"`
}

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func key(token string) string      { return fmt.Sprintf("sess:%s", token) }
func userSetKey(uid string) string { return fmt.Sprintf("user_sessions:%s", uid) }

// Create stores the session under the token and indexes it by user so that
// RevokeAllForUser can find every live session of a deleted user.
func (s *Store) Create(ctx context.Context, token string, data Data) error {
	data.IssuedAt = time.Now().Unix()
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key(token), b, s.ttl)
	pipe.SAdd(ctx, userSetKey(data.UserID), token)
	pipe.Expire(ctx, userSetKey(data.UserID), s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Get returns the session for the token, or redis.Nil when absent/expired.
func (s *Store) Get(ctx context.Context, token string) (*Data, error) {
	b, err := s.rdb.Get(ctx, key(token)).Bytes()
	if err != nil {
		return nil, err
	}
	var d Data
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	d, _ := s.Get(ctx, token)
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key(token))
	if d != nil {
		pipe.SRem(ctx, userSetKey(d.UserID), token)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// RevokeAllForUser drops every session of the user. Called when an admin
// deletes a user account.
func (s *Store) RevokeAllForUser(ctx context.Context, userID string) error {
	tokens, err := s.rdb.SMembers(ctx, userSetKey(userID)).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	for _, t := range tokens {
		pipe.Del(ctx, key(t))
	}
	pipe.Del(ctx, userSetKey(userID))
	_, err = pipe.Exec(ctx)
	return err
}

// TTLSeconds exposes the configured session lifetime for login responses.
func (s *Store) TTLSeconds() int { return int(s.ttl / time.Second) }
