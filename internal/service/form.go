// Package service contains the business logic for the PostBot campaign API.
// Services validate inputs, hold per-session view state, and orchestrate
// CampaignStore calls. No storage encoding lives here; services depend on
// repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/postbot/backend/internal/domain"
	"github.com/pkordes/postbot/backend/internal/metrics"
	"github.com/pkordes/postbot/backend/internal/repo"
)

// Options configures the submission behaviour shared by FormService and
// ResultsService.
type Options struct {
	// Effect runs after a successful save (generate) or on publish.
	// Defaults to SimulatedEffect{Delay: 2 * time.Second}.
	Effect Effect
	// Timeout bounds a single Effect run. Zero means no deadline.
	Timeout time.Duration
	Logger  *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Effect == nil {
		o.Effect = SimulatedEffect{Delay: 2 * time.Second}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// GenerateResult is what a successful generate hands to the results view.
type GenerateResult struct {
	SessionID uuid.UUID
	Record    domain.CampaignRecord
	Platforms domain.PlatformSelection
}

// form is the mutable draft behind one session's form view.
// record.TargetAudience is unused; audience is the source of truth.
type form struct {
	mu        sync.Mutex
	record    domain.CampaignRecord
	audience  *domain.TagSet
	platforms domain.PlatformSelection
	inflight  *singleFlight

	// revision counts attempted saves; a results view built from an older
	// revision is stale.
	revision uint64
	lastSeen time.Time
}

func (f *form) draftLocked() domain.Draft {
	rec := f.record
	rec.TargetAudience = f.audience.Values()
	return domain.Draft{
		Record:     rec,
		Platforms:  f.platforms.Clone(),
		Generating: f.inflight.running(),
	}
}

// FormService implements the campaign form: field edits, audience tags,
// platform toggles, and generate.
type FormService struct {
	store      repo.CampaignStore
	submission submission
	log        *slog.Logger

	mu    sync.RWMutex
	forms map[uuid.UUID]*form
}

// NewFormService constructs a FormService that saves through store.
func NewFormService(store repo.CampaignStore, opts Options) *FormService {
	opts = opts.withDefaults()
	return &FormService{
		store:      store,
		submission: submission{kind: "generate", effect: opts.Effect, timeout: opts.Timeout},
		log:        opts.Logger,
		forms:      map[uuid.UUID]*form{},
	}
}

// Create starts a new session with the prefilled default draft.
func (s *FormService) Create(_ context.Context) (uuid.UUID, domain.Draft, error) {
	rec := domain.DefaultDraftRecord()
	f := &form{
		record:    rec,
		audience:  domain.NewTagSetFrom(domain.TagModePlain, rec.TargetAudience),
		platforms: domain.DefaultDraftPlatforms(),
		inflight:  newSingleFlight(),
		lastSeen:  time.Now(),
	}
	id := uuid.New()

	s.mu.Lock()
	s.forms[id] = f
	s.mu.Unlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	return id, f.draftLocked(), nil
}

// Get returns the session's current draft.
func (s *FormService) Get(_ context.Context, id uuid.UUID) (domain.Draft, error) {
	return s.with(id, "Get", func(*form) error { return nil })
}

// UpdateFields replaces exactly the fields set in fields.
func (s *FormService) UpdateFields(_ context.Context, id uuid.UUID, fields domain.CampaignFields) (domain.Draft, error) {
	return s.with(id, "UpdateFields", func(f *form) error {
		f.record = fields.Apply(f.record)
		return nil
	})
}

// AddAudienceTag appends a trimmed audience tag. Blank input is a silent no-op.
func (s *FormService) AddAudienceTag(_ context.Context, id uuid.UUID, raw string) (domain.Draft, error) {
	return s.with(id, "AddAudienceTag", func(f *form) error {
		f.audience.Add(raw)
		return nil
	})
}

// RemoveAudienceTag removes every audience tag equal to value.
func (s *FormService) RemoveAudienceTag(_ context.Context, id uuid.UUID, value string) (domain.Draft, error) {
	return s.with(id, "RemoveAudienceTag", func(f *form) error {
		f.audience.Remove(value)
		return nil
	})
}

// TogglePlatform selects p when unselected and deselects it otherwise.
func (s *FormService) TogglePlatform(_ context.Context, id uuid.UUID, p domain.Platform) (domain.Draft, error) {
	return s.with(id, "TogglePlatform", func(f *form) error {
		f.platforms = f.platforms.Toggle(p)
		return nil
	})
}

// Generate validates the selection, saves a snapshot of the draft, and waits
// for the submission effect. Only one Generate per session runs at a time.
//
// Storage failures during save are logged and otherwise ignored; the results
// view falls back to defaults when it finds nothing.
func (s *FormService) Generate(ctx context.Context, id uuid.UUID) (GenerateResult, error) {
	f, err := s.lookup(id)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("service.FormService.Generate: %w", err)
	}

	f.mu.Lock()
	if len(f.platforms) == 0 {
		f.mu.Unlock()
		metrics.RecordSubmission(s.submission.kind, metrics.OutcomeValidation, 0)
		return GenerateResult{}, fmt.Errorf("service.FormService.Generate: %w: select at least one platform", domain.ErrValidation)
	}
	if !f.inflight.begin() {
		f.mu.Unlock()
		metrics.RecordSubmission(s.submission.kind, metrics.OutcomeBusy, 0)
		return GenerateResult{}, fmt.Errorf("service.FormService.Generate: %w", domain.ErrSubmissionInProgress)
	}
	defer f.inflight.end()

	f.lastSeen = time.Now()
	draft := f.draftLocked()
	f.mu.Unlock()

	if err := s.store.Save(ctx, id.String(), draft.Record, draft.Platforms); err != nil {
		metrics.RecordStorageDegraded("save", storageReason(err))
		s.log.WarnContext(ctx, "campaign save skipped", "session_id", id, "error", err)
	}
	// Bumped even when the effect below fails: storage already moved on.
	f.mu.Lock()
	f.revision++
	f.mu.Unlock()

	if err := s.submission.run(ctx); err != nil {
		return GenerateResult{}, fmt.Errorf("service.FormService.Generate: %w", err)
	}

	s.log.InfoContext(ctx, "campaign generated",
		"session_id", id,
		"platforms", draft.Platforms.Strings(),
		"audience_tags", len(draft.Record.TargetAudience),
	)
	return GenerateResult{SessionID: id, Record: draft.Record, Platforms: draft.Platforms}, nil
}

// Revision reports how many times the session has saved a campaign, and
// whether the session exists at all. It counts as session activity.
func (s *FormService) Revision(id uuid.UUID) (uint64, bool) {
	f, err := s.lookup(id)
	if err != nil {
		return 0, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSeen = time.Now()
	return f.revision, true
}

// Expire removes sessions idle since before cutoff and returns their IDs.
// A session with a generate in flight is kept.
func (s *FormService) Expire(cutoff time.Time) []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []uuid.UUID
	for id, f := range s.forms {
		f.mu.Lock()
		idle := f.lastSeen.Before(cutoff) && !f.inflight.running()
		f.mu.Unlock()
		if idle {
			delete(s.forms, id)
			expired = append(expired, id)
		}
	}
	return expired
}

func (s *FormService) lookup(id uuid.UUID) (*form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.forms[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, domain.ErrSessionNotFound)
	}
	return f, nil
}

// with runs mutate under the form lock and returns the resulting draft.
func (s *FormService) with(id uuid.UUID, op string, mutate func(*form) error) (domain.Draft, error) {
	f, err := s.lookup(id)
	if err != nil {
		return domain.Draft{}, fmt.Errorf("service.FormService.%s: %w", op, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSeen = time.Now()
	if err := mutate(f); err != nil {
		return domain.Draft{}, fmt.Errorf("service.FormService.%s: %w", op, err)
	}
	return f.draftLocked(), nil
}
