package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/school-pay-api/internal/models"
)

const (
	rosterKey          = "portal:roster"
	principalKeyPrefix = "portal:principal:"
	languageKey        = "portal:language"
)

// SnapshotRepository mirrors session state into Redis so the portal survives
// restarts: the roster, per-session principals and the selected language.
type SnapshotRepository struct {
	client       *redis.Client
	principalTTL time.Duration
	logger       *zap.Logger
}

// NewSnapshotRepository constructs a snapshot repository. principalTTL bounds
// how long an idle session's principal survives; zero means no expiry.
func NewSnapshotRepository(client *redis.Client, principalTTL time.Duration, logger *zap.Logger) *SnapshotRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotRepository{client: client, principalTTL: principalTTL, logger: logger}
}

// rosterEntry is the persisted form of an account. The API model keeps the
// credential hash out of its JSON, so the mirror carries it in a field of its
// own; a roster restored without hashes could authenticate nobody.
type rosterEntry struct {
	models.Account
	SecretHash string `json:"secret_hash,omitempty"`
}

// MarshalRoster encodes a roster for durable storage, credential hashes
// included.
func MarshalRoster(roster []models.Account) ([]byte, error) {
	entries := make([]rosterEntry, len(roster))
	for i, account := range roster {
		entries[i] = rosterEntry{Account: account, SecretHash: account.SecretHash}
	}
	return json.Marshal(entries)
}

// UnmarshalRoster decodes a stored roster back into account models.
func UnmarshalRoster(raw []byte) ([]models.Account, error) {
	var entries []rosterEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	roster := make([]models.Account, len(entries))
	for i, entry := range entries {
		account := entry.Account
		account.SecretHash = entry.SecretHash
		roster[i] = account
	}
	return roster, nil
}

// SaveRoster stores the full account roster.
func (r *SnapshotRepository) SaveRoster(ctx context.Context, roster []models.Account) error {
	if r.client == nil {
		return nil
	}
	payload, err := MarshalRoster(roster)
	if err != nil {
		return fmt.Errorf("marshal roster: %w", err)
	}
	if err := r.client.Set(ctx, rosterKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set roster: %w", err)
	}
	return nil
}

// LoadRoster returns the stored roster, or nil when none exists.
func (r *SnapshotRepository) LoadRoster(ctx context.Context) ([]models.Account, error) {
	if r.client == nil {
		return nil, nil
	}
	raw, err := r.client.Get(ctx, rosterKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get roster: %w", err)
	}
	roster, err := UnmarshalRoster(raw)
	if err != nil {
		return nil, fmt.Errorf("unmarshal roster: %w", err)
	}
	return roster, nil
}

// SavePrincipal stores one session's principal snapshot.
func (r *SnapshotRepository) SavePrincipal(ctx context.Context, sessionID string, principal *models.Principal) error {
	if r.client == nil {
		return nil
	}
	payload, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("marshal principal: %w", err)
	}
	if err := r.client.Set(ctx, principalKeyPrefix+sessionID, payload, r.principalTTL).Err(); err != nil {
		return fmt.Errorf("redis set principal %s: %w", sessionID, err)
	}
	return nil
}

// LoadPrincipal returns one session's principal, or nil when absent.
func (r *SnapshotRepository) LoadPrincipal(ctx context.Context, sessionID string) (*models.Principal, error) {
	if r.client == nil {
		return nil, nil
	}
	raw, err := r.client.Get(ctx, principalKeyPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get principal %s: %w", sessionID, err)
	}
	var principal models.Principal
	if err := json.Unmarshal(raw, &principal); err != nil {
		return nil, fmt.Errorf("unmarshal principal %s: %w", sessionID, err)
	}
	return &principal, nil
}

// DeletePrincipal drops one session's principal snapshot.
func (r *SnapshotRepository) DeletePrincipal(ctx context.Context, sessionID string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, principalKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis delete principal %s: %w", sessionID, err)
	}
	return nil
}

// SaveLanguage persists the selected interface language.
func (r *SnapshotRepository) SaveLanguage(ctx context.Context, language string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Set(ctx, languageKey, language, 0).Err(); err != nil {
		return fmt.Errorf("redis set language: %w", err)
	}
	return nil
}

// LoadLanguage returns the persisted language tag, empty when unset.
func (r *SnapshotRepository) LoadLanguage(ctx context.Context) (string, error) {
	if r.client == nil {
		return "", nil
	}
	value, err := r.client.Get(ctx, languageKey).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("redis get language: %w", err)
	}
	return value, nil
}
