package service

import (
	"context"
	"fmt"
	"time"

	"coach/internal/store"
	"coach/internal/strava"
)

// lastSyncKey is the sync_state row holding the activity watermark.
const lastSyncKey = "last_activity_sync"

// SyncService pulls new Strava activities into the local store.
type SyncService struct {
	client *strava.Client
	store  *store.DB
}

// NewSyncService creates a new sync service.
func NewSyncService(client *strava.Client, db *store.DB) *SyncService {
	return &SyncService{client: client, store: db}
}

// SyncResult contains the results of a sync operation
type SyncResult struct {
	ActivitiesFetched int
	WorkoutsStored    int
	Errors            []error
}

// SyncAll fetches every activity since the stored watermark and upserts
// the converted workouts. Per-activity failures accumulate in the result;
// only transport-level errors abort the run.
func (s *SyncService) SyncAll(ctx context.Context) (*SyncResult, error) {
	var after time.Time
	if v, _ := s.store.GetSyncState(lastSyncKey); v != "" {
		after, _ = time.Parse(time.RFC3339, v)
	}

	result := &SyncResult{}
	page := 1

	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		activities, err := s.client.GetActivities(ctx, after, page, strava.MaxPerPage)
		if err != nil {
			return result, fmt.Errorf("fetching page %d: %w", page, err)
		}
		if len(activities) == 0 {
			break
		}
		result.ActivitiesFetched += len(activities)

		for _, a := range activities {
			w := convertActivity(a)
			if err := s.store.UpsertWorkout(w); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("storing activity %d: %w", a.ID, err))
				continue
			}
			result.WorkoutsStored++
		}

		if len(activities) < strava.MaxPerPage {
			break // Last page
		}
		page++
	}

	if err := s.store.SetSyncState(lastSyncKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("saving sync watermark: %w", err))
	}

	return result, nil
}

// convertActivity maps a Strava summary activity onto a workout row.
func convertActivity(a strava.Activity) *store.Workout {
	sport := a.SportType
	if sport == "" {
		sport = a.Type
	}

	w := &store.Workout{
		ID:              fmt.Sprintf("strava-%d", a.ID),
		Name:            a.Name,
		Sport:           store.NormalizeSport(sport),
		StartDate:       a.StartDate.UTC(),
		DurationSeconds: a.MovingTime,
		Source:          store.SourceStrava,
	}
	if a.Distance > 0 {
		d := a.Distance
		w.Distance = &d
	}
	if a.HasHeartrate && a.AverageHeartrate > 0 {
		hr := a.AverageHeartrate
		w.AvgHeartRate = &hr
	}
	// Estimated watts are too noisy to trend; keep meter readings only.
	if a.DeviceWatts && a.AverageWatts > 0 {
		p := a.AverageWatts
		w.AvgPower = &p
	}
	return w
}
