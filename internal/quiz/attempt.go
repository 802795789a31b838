package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrAttemptNotFound = errors.New("quiz attempt not found or expired")

const attemptKeyPrefix = "quiz:attempt:"

// Attempt binds a presented quiz to the student and internship it was drawn for.
type Attempt struct {
	Token        string     `json:"token"`
	StudentID    int        `json:"studentId"`
	InternshipID int        `json:"internshipId"`
	Questions    []Question `json:"questions"`
	ExpiresAt    time.Time  `json:"expiresAt"`
}

// AttemptStore keeps attempts in Redis until they are submitted or expire.
type AttemptStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAttemptStore(client *redis.Client, ttl time.Duration) *AttemptStore {
	return &AttemptStore{client: client, ttl: ttl}
}

// Save assigns a fresh token and stores the attempt with the store's TTL.
func (s *AttemptStore) Save(ctx context.Context, a *Attempt) error {
	a.Token = uuid.NewString()
	a.ExpiresAt = time.Now().Add(s.ttl).UTC()

	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}
	if err := s.client.Set(ctx, attemptKeyPrefix+a.Token, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store attempt: %w", err)
	}
	return nil
}

// Consume returns and deletes the attempt when it belongs to studentID, so each
// token scores once. Another student's submission leaves the attempt in place.
func (s *AttemptStore) Consume(ctx context.Context, token string, studentID int) (*Attempt, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, ErrAttemptNotFound
	}

	key := attemptKeyPrefix + token
	var a Attempt
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		payload, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrAttemptNotFound
			}
			return fmt.Errorf("load attempt: %w", err)
		}
		if err := json.Unmarshal(payload, &a); err != nil {
			return fmt.Errorf("decode attempt: %w", err)
		}
		if a.StudentID != studentID {
			return ErrAttemptNotFound
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			return nil
		})
		return err
	}, key)
	if err != nil {
		// A concurrent submit of the same token consumed it first.
		if errors.Is(err, redis.TxFailedErr) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	return &a, nil
}
