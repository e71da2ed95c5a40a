package recent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/agendadoc/booking-platform/pkg/logging"
)

// DefaultMaxEntries bounds the recent list; the least recently selected
// patient is evicted once the cap is reached.
const DefaultMaxEntries = 10

// Store persists per-practitioner recent-patient lists in redis. Unlike the
// booking draft, this list survives app restarts.
type Store struct {
	redis  *redis.Client
	max    int
	logger *logging.Logger
	tracer trace.Tracer
}

// NewStore creates a recent-patient store. max <= 0 selects DefaultMaxEntries.
func NewStore(client *redis.Client, max int, logger *logging.Logger) *Store {
	if client == nil {
		panic("recent: redis client cannot be nil")
	}
	if max <= 0 {
		max = DefaultMaxEntries
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		redis:  client,
		max:    max,
		logger: logger,
		tracer: otel.Tracer("agendadoc.internal.recent"),
	}
}

// Load returns the practitioner's recent patients, most recent first. A
// missing key is an empty list, not an error.
func (s *Store) Load(ctx context.Context, practitionerID string) ([]Entry, error) {
	ctx, span := s.tracer.Start(ctx, "recent.load")
	defer span.End()

	data, err := s.redis.Get(ctx, recentKey(practitionerID)).Bytes()
	if err == redis.Nil {
		return []Entry{}, nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("recent: load list: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt list must not block the wizard; start over.
		s.logger.Warn("recent patient list is corrupt, resetting",
			"practitioner_id", practitionerID,
			"error", err,
		)
		return []Entry{}, nil
	}
	return entries, nil
}

// Add puts the entry at the front of the practitioner's list. An entry with
// the same CPF moves to the front instead of duplicating; the list is capped
// and the tail evicted.
func (s *Store) Add(ctx context.Context, practitionerID string, entry Entry) error {
	ctx, span := s.tracer.Start(ctx, "recent.add")
	defer span.End()

	if entry.CPF == "" {
		return nil
	}

	entries, err := s.Load(ctx, practitionerID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	updated := make([]Entry, 0, len(entries)+1)
	updated = append(updated, entry)
	for _, e := range entries {
		if e.CPF == entry.CPF {
			continue
		}
		updated = append(updated, e)
	}
	if len(updated) > s.max {
		updated = updated[:s.max]
	}

	data, err := json.Marshal(updated)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("recent: encode list: %w", err)
	}
	if err := s.redis.Set(ctx, recentKey(practitionerID), data, 0).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("recent: persist list: %w", err)
	}
	return nil
}

// AddBestEffort records the entry and only logs on failure. The wizard path
// must never be blocked by the recency cache.
func (s *Store) AddBestEffort(ctx context.Context, practitionerID string, entry Entry) {
	// Detach from the request deadline; persistence may outlive the handler.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Add(ctx, practitionerID, entry); err != nil {
		s.logger.Warn("failed to persist recent patient",
			"practitioner_id", practitionerID,
			"error", err,
		)
	}
}

func recentKey(practitionerID string) string {
	return fmt.Sprintf("recent_patients:%s", practitionerID)
}
