package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const stateKeyPrefix = "healthtracker-state||"

var ErrStateNotFound = errors.New("session state not found")

// Store keeps session states in redis, keyed by the auth token.
type Store struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewStore(redisClient *redis.Client, ttl time.Duration) *Store {
	return &Store{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func (s *Store) Get(ctx context.Context, token string) (State, error) {
	cmd := s.redisClient.Get(ctx, stateKeyPrefix+token)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return State{}, ErrStateNotFound
		}
		return State{}, fmt.Errorf("get state: %w", err)
	}

	var state State
	if err := json.Unmarshal([]byte(cmd.Val()), &state); err != nil {
		return State{}, fmt.Errorf("unmarshal state: %w", err)
	}
	return state, nil
}

// GetOrNew returns the stored state, or a fresh logged in state for a token
// whose dashboard state expired or was never saved.
func (s *Store) GetOrNew(ctx context.Context, token string) (State, error) {
	state, err := s.Get(ctx, token)
	if errors.Is(err, ErrStateNotFound) {
		return State{}.Login(token, ""), nil
	}
	return state, err
}

func (s *Store) Save(ctx context.Context, state State) error {
	if state.Token == "" {
		return errors.New("save state: empty token")
	}

	stateJson, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := s.redisClient.Set(ctx, stateKeyPrefix+state.Token, stateJson, s.ttl).Err(); err != nil {
		return fmt.Errorf("set state: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.redisClient.Del(ctx, stateKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	return nil
}
