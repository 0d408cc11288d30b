package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pkordes/postbot/backend/internal/domain"
)

// Slot key suffixes. The full key is "<namespace>:<suffix>".
const (
	FormDataKey  = "campaignFormData"
	PlatformsKey = "selectedPlatforms"
)

// Snapshot is the result of CampaignStore.Load. Each half is independently
// absent (nil) or present.
type Snapshot struct {
	Record    *domain.CampaignRecord
	Platforms domain.PlatformSelection

	// Discarded lists slot keys whose content failed to decode and was
	// treated as absent.
	Discarded []string
}

// CampaignStore persists one campaign record and one platform selection per
// namespace. Single slot, last write wins, no history.
type CampaignStore interface {
	// Save serializes both values and overwrites the namespace's slots.
	// A failing medium is reported as domain.ErrStorageUnavailable; callers
	// treat that as a silent no-op.
	Save(ctx context.Context, namespace string, record domain.CampaignRecord, platforms domain.PlatformSelection) error

	// Load reads both slots. Malformed content degrades to absent with a nil
	// error. A failing medium yields an empty Snapshot and
	// domain.ErrStorageUnavailable.
	Load(ctx context.Context, namespace string) (Snapshot, error)
}

type slotCampaignStore struct {
	slots SlotStore
}

// NewCampaignStore constructs a CampaignStore on top of any SlotStore.
func NewCampaignStore(slots SlotStore) CampaignStore {
	return &slotCampaignStore{slots: slots}
}

// SlotKey returns the storage key for suffix within namespace.
// An empty namespace yields the bare suffix.
func SlotKey(namespace, suffix string) string {
	if namespace == "" {
		return suffix
	}
	return namespace + ":" + suffix
}

func (s *slotCampaignStore) Save(ctx context.Context, namespace string, record domain.CampaignRecord, platforms domain.PlatformSelection) error {
	recordJSON, err := json.Marshal(record.Normalized())
	if err != nil {
		return fmt.Errorf("repo.CampaignStore.Save: encode record: %w", err)
	}
	platformsJSON, err := json.Marshal(platforms.Strings())
	if err != nil {
		return fmt.Errorf("repo.CampaignStore.Save: encode platforms: %w", err)
	}

	if err := s.slots.Set(ctx, SlotKey(namespace, FormDataKey), string(recordJSON)); err != nil {
		return fmt.Errorf("repo.CampaignStore.Save: %w", err)
	}
	if err := s.slots.Set(ctx, SlotKey(namespace, PlatformsKey), string(platformsJSON)); err != nil {
		return fmt.Errorf("repo.CampaignStore.Save: %w", err)
	}
	return nil
}

func (s *slotCampaignStore) Load(ctx context.Context, namespace string) (Snapshot, error) {
	var snap Snapshot

	formKey := SlotKey(namespace, FormDataKey)
	raw, found, err := s.slots.Get(ctx, formKey)
	if err != nil {
		return Snapshot{}, fmt.Errorf("repo.CampaignStore.Load: %w", err)
	}
	if found {
		if rec, ok := decodeRecord(raw); ok {
			snap.Record = &rec
		} else {
			snap.Discarded = append(snap.Discarded, formKey)
		}
	}

	platformsKey := SlotKey(namespace, PlatformsKey)
	raw, found, err = s.slots.Get(ctx, platformsKey)
	if err != nil {
		return Snapshot{}, fmt.Errorf("repo.CampaignStore.Load: %w", err)
	}
	if found {
		if sel, ok := decodePlatforms(raw); ok {
			snap.Platforms = sel
		} else {
			snap.Discarded = append(snap.Discarded, platformsKey)
		}
	}

	return snap, nil
}

// decodeRecord parses a stored record. JSON null counts as malformed.
func decodeRecord(raw string) (domain.CampaignRecord, bool) {
	var rec *domain.CampaignRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil || rec == nil {
		return domain.CampaignRecord{}, false
	}
	return rec.Normalized(), true
}

// decodePlatforms parses a stored selection; unknown identifiers count as malformed.
func decodePlatforms(raw string) (domain.PlatformSelection, bool) {
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil || names == nil {
		return nil, false
	}
	sel, err := domain.ParsePlatformSelection(names)
	if err != nil {
		return nil, false
	}
	return sel, true
}

// IsUnavailable reports whether err came from a failing storage medium.
func IsUnavailable(err error) bool {
	return errors.Is(err, domain.ErrStorageUnavailable)
}
