package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/postbot/backend/internal/domain"
	"github.com/pkordes/postbot/backend/internal/metrics"
	"github.com/pkordes/postbot/backend/internal/repo"
)

// CampaignView is the results screen: a read-only summary of the stored
// record plus one editable post per platform.
type CampaignView struct {
	SessionID  uuid.UUID
	Summary    domain.Summary
	Platforms  domain.PlatformSelection
	Posts      []domain.Post
	Publishing bool
}

type postState struct {
	title    string
	content  string
	hashtags *domain.TagSet
}

func newPostState(p domain.Platform) *postState {
	d := domain.DefaultPost(p)
	return &postState{
		title:    d.Title,
		content:  d.Content,
		hashtags: domain.NewTagSetFrom(domain.TagModeHashtag, d.Hashtags),
	}
}

func (ps *postState) post(p domain.Platform) domain.Post {
	return domain.Post{Platform: p, Title: ps.title, Content: ps.content, Hashtags: ps.hashtags.Values()}
}

// SessionTracker tells the results view whether a form session exists and
// which save it last made. FormService implements it.
type SessionTracker interface {
	Revision(id uuid.UUID) (rev uint64, ok bool)
}

// resultsView holds one session's ephemeral post edits. Nothing here is
// written back to the CampaignStore.
type resultsView struct {
	revision uint64

	mu        sync.Mutex
	summary   domain.Summary
	platforms domain.PlatformSelection
	posts     map[domain.Platform]*postState
	publish   *singleFlight
}

// ResultsService implements the generated-campaign screen.
// Each session's view is initialized from CampaignStore.Load once per form
// save and then lives in memory until the next save or until the session
// expires.
type ResultsService struct {
	store      repo.CampaignStore
	sessions   SessionTracker
	submission submission
	log        *slog.Logger

	mu    sync.Mutex
	views map[uuid.UUID]*resultsView
}

// NewResultsService constructs a ResultsService that loads through store and
// serves only sessions known to sessions.
func NewResultsService(store repo.CampaignStore, sessions SessionTracker, opts Options) *ResultsService {
	opts = opts.withDefaults()
	return &ResultsService{
		store:      store,
		sessions:   sessions,
		submission: submission{kind: "publish", effect: opts.Effect, timeout: opts.Timeout},
		log:        opts.Logger,
		views:      map[uuid.UUID]*resultsView{},
	}
}

// Open returns the session's results view, loading it when missing or stale.
func (s *ResultsService) Open(ctx context.Context, id uuid.UUID) (CampaignView, error) {
	v, err := s.view(ctx, id)
	if err != nil {
		return CampaignView{}, fmt.Errorf("service.ResultsService.Open: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked(id), nil
}

// Forget drops the cached views of ids, typically sessions that expired.
func (s *ResultsService) Forget(ids ...uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.views, id)
	}
}

// EditPost replaces the content and hashtags of one platform's post.
// The title changes only for platforms that carry one and only when a
// non-empty title is supplied.
func (s *ResultsService) EditPost(ctx context.Context, id uuid.UUID, p domain.Platform, edit domain.PostEdit) (domain.Post, error) {
	return s.withPost(ctx, id, p, "EditPost", func(ps *postState) {
		if p.SupportsTitle() && edit.Title != nil && *edit.Title != "" {
			ps.title = *edit.Title
		}
		ps.content = edit.Content
		ps.hashtags = domain.NewTagSetFrom(domain.TagModeHashtag, edit.Hashtags)
	})
}

// AddHashtag appends a hashtag, prefixing "#" when missing. Blank is a no-op.
func (s *ResultsService) AddHashtag(ctx context.Context, id uuid.UUID, p domain.Platform, raw string) (domain.Post, error) {
	return s.withPost(ctx, id, p, "AddHashtag", func(ps *postState) {
		ps.hashtags.Add(raw)
	})
}

// RemoveHashtag removes every hashtag equal to value.
func (s *ResultsService) RemoveHashtag(ctx context.Context, id uuid.UUID, p domain.Platform, value string) (domain.Post, error) {
	return s.withPost(ctx, id, p, "RemoveHashtag", func(ps *postState) {
		ps.hashtags.Remove(value)
	})
}

// RegeneratePost discards edits to one platform's post and restores the
// built-in content.
func (s *ResultsService) RegeneratePost(ctx context.Context, id uuid.UUID, p domain.Platform) (domain.Post, error) {
	return s.withPost(ctx, id, p, "RegeneratePost", func(ps *postState) {
		*ps = *newPostState(p)
	})
}

// Publish runs the submission effect for the session's posts.
// At most one Publish per session runs at a time.
func (s *ResultsService) Publish(ctx context.Context, id uuid.UUID) (CampaignView, error) {
	v, err := s.view(ctx, id)
	if err != nil {
		return CampaignView{}, fmt.Errorf("service.ResultsService.Publish: %w", err)
	}
	if !v.publish.begin() {
		metrics.RecordSubmission(s.submission.kind, metrics.OutcomeBusy, 0)
		return CampaignView{}, fmt.Errorf("service.ResultsService.Publish: %w", domain.ErrSubmissionInProgress)
	}
	defer v.publish.end()

	if err := s.submission.run(ctx); err != nil {
		return CampaignView{}, fmt.Errorf("service.ResultsService.Publish: %w", err)
	}

	v.mu.Lock()
	view := v.snapshotLocked(id)
	v.mu.Unlock()

	s.log.InfoContext(ctx, "campaign published", "session_id", id, "platforms", view.Platforms.Strings())
	return view, nil
}

// view returns the cached view for id, loading a new one when there is none
// or the form has saved since. Storage is read without holding s.mu; when two
// callers race, the first view inserted for a revision wins.
func (s *ResultsService) view(ctx context.Context, id uuid.UUID) (*resultsView, error) {
	rev, ok := s.sessions.Revision(id)
	if !ok {
		s.Forget(id)
		return nil, fmt.Errorf("%s: %w", id, domain.ErrSessionNotFound)
	}

	s.mu.Lock()
	v, cached := s.views[id]
	s.mu.Unlock()
	if cached && v.revision >= rev {
		return v, nil
	}

	fresh := s.load(ctx, id)
	fresh.revision = rev

	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.views[id]; ok && cur.revision >= rev {
		return cur, nil
	}
	s.views[id] = fresh
	return fresh, nil
}

// load seeds a view from storage, falling back to defaults for anything
// absent, malformed, or unreachable.
func (s *ResultsService) load(ctx context.Context, id uuid.UUID) *resultsView {
	snap, err := s.store.Load(ctx, id.String())
	if err != nil {
		metrics.RecordStorageDegraded("load", storageReason(err))
		s.log.WarnContext(ctx, "campaign load failed, using defaults", "session_id", id, "error", err)
	}
	for _, key := range snap.Discarded {
		metrics.RecordStorageDegraded("load", "malformed")
		s.log.WarnContext(ctx, "discarded malformed slot", "session_id", id, "key", key)
	}

	platforms := snap.Platforms
	if len(platforms) == 0 {
		platforms = domain.PlatformSelection{domain.DefaultPlatform}
	}

	v := &resultsView{
		summary:   domain.SummaryOf(snap.Record),
		platforms: platforms.Clone(),
		posts:     make(map[domain.Platform]*postState, len(platforms)),
		publish:   newSingleFlight(),
	}
	for _, p := range platforms {
		if _, ok := v.posts[p]; !ok {
			v.posts[p] = newPostState(p)
		}
	}
	return v
}

// storageReason labels an absorbed storage error for metrics.
func storageReason(err error) string {
	if repo.IsUnavailable(err) {
		return "unavailable"
	}
	return "error"
}

func (v *resultsView) snapshotLocked(id uuid.UUID) CampaignView {
	view := CampaignView{
		SessionID:  id,
		Summary:    v.summary,
		Platforms:  v.platforms.Clone(),
		Posts:      make([]domain.Post, 0, len(v.posts)),
		Publishing: v.publish.running(),
	}
	view.Summary.TargetAudience = append([]string{}, v.summary.TargetAudience...)
	seen := make(map[domain.Platform]bool, len(v.platforms))
	for _, p := range v.platforms {
		if seen[p] {
			continue
		}
		seen[p] = true
		view.Posts = append(view.Posts, v.posts[p].post(p))
	}
	return view
}

func (s *ResultsService) withPost(ctx context.Context, id uuid.UUID, p domain.Platform, op string, mutate func(*postState)) (domain.Post, error) {
	v, err := s.view(ctx, id)
	if err != nil {
		return domain.Post{}, fmt.Errorf("service.ResultsService.%s: %w", op, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	ps, ok := v.posts[p]
	if !ok {
		return domain.Post{}, fmt.Errorf("service.ResultsService.%s: platform %s not in campaign: %w", op, p, domain.ErrNotFound)
	}
	mutate(ps)
	return ps.post(p), nil
}
