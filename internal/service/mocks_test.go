package service_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/postbot/backend/internal/domain"
	"github.com/pkordes/postbot/backend/internal/repo"
	"github.com/pkordes/postbot/backend/internal/service"
)

// mockCampaignStore is a hand-written test double for repo.CampaignStore.
// Each method is a function field; set only the ones your test needs.
type mockCampaignStore struct {
	save func(ctx context.Context, ns string, r domain.CampaignRecord, p domain.PlatformSelection) error
	load func(ctx context.Context, ns string) (repo.Snapshot, error)
}

func (m *mockCampaignStore) Save(ctx context.Context, ns string, r domain.CampaignRecord, p domain.PlatformSelection) error {
	return m.save(ctx, ns, r, p)
}
func (m *mockCampaignStore) Load(ctx context.Context, ns string) (repo.Snapshot, error) {
	return m.load(ctx, ns)
}

// compile-time check
var _ repo.CampaignStore = (*mockCampaignStore)(nil)

// recordingStore wraps a memory-backed store and counts Save calls.
type recordingStore struct {
	repo.CampaignStore
	mu    sync.Mutex
	saves int
}

func newRecordingStore() *recordingStore {
	return &recordingStore{CampaignStore: repo.NewCampaignStore(repo.NewMemorySlotStore())}
}

func (r *recordingStore) Save(ctx context.Context, ns string, rec domain.CampaignRecord, p domain.PlatformSelection) error {
	r.mu.Lock()
	r.saves++
	r.mu.Unlock()
	return r.CampaignStore.Save(ctx, ns, rec, p)
}

func (r *recordingStore) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// instantOpts runs submissions without delay.
func instantOpts() service.Options {
	return service.Options{Effect: service.SimulatedEffect{}, Logger: quietLogger()}
}

// gatedEffect blocks until release is closed, signalling started first.
type gatedEffect struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedEffect() *gatedEffect {
	return &gatedEffect{started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedEffect) Run(ctx context.Context) error {
	g.once.Do(func() { close(g.started) })
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// fakeSessions is a SessionTracker over a revision map. With all set, IDs
// missing from the map count as existing sessions at revision 0.
type fakeSessions struct {
	mu   sync.Mutex
	revs map[uuid.UUID]uint64
	all  bool
}

func anySession() *fakeSessions {
	return &fakeSessions{revs: map[uuid.UUID]uint64{}, all: true}
}

func knownSessions(ids ...uuid.UUID) *fakeSessions {
	f := &fakeSessions{revs: map[uuid.UUID]uint64{}}
	for _, id := range ids {
		f.revs[id] = 0
	}
	return f
}

func (f *fakeSessions) Revision(id uuid.UUID) (uint64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rev, ok := f.revs[id]
	if !ok && f.all {
		return 0, true
	}
	return rev, ok
}

func (f *fakeSessions) bump(id uuid.UUID) {
	f.mu.Lock()
	f.revs[id]++
	f.mu.Unlock()
}

var _ service.SessionTracker = (*fakeSessions)(nil)

// newResults builds a ResultsService that treats every session as existing.
func newResults(store repo.CampaignStore, opts service.Options) *service.ResultsService {
	return service.NewResultsService(store, anySession(), opts)
}
