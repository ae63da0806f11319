package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dom "storefront/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	sessionTTL       = 24 * time.Hour
)

// ErrNoSession is returned by Get for unknown or expired sessions.
var ErrNoSession = errors.New("session not found")

// Session is the value stored under a session id.
type Session struct {
	UserID int64    `json:"user_id"`
	Role   dom.Role `json:"role"`
}

func (s Session) IsAdmin() bool { return s.Role == dom.RoleAdmin }

// Store manages sessions in Redis.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a new session store.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = sessionTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// TTL is the lifetime of new sessions; the cookie max-age follows it.
func (s *Store) TTL() time.Duration { return s.ttl }

// Create stores a new session and returns its ID.
func (s *Store) Create(ctx context.Context, sess Session) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+id, b, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Get loads a session by ID.
func (s *Store) Get(ctx context.Context, id string) (Session, error) {
	b, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil || sess.UserID == 0 {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

// Delete removes a session by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
