// Package snapshot exports the camp data to JSON documents and imports it back.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"camp-signup-api/internal/adapters/storage"
	"camp-signup-api/internal/models"
	"camp-signup-api/internal/repositories"
)

// FormatVersion is the snapshot document version written by Export
const FormatVersion = 1

// CamperRecord is a camper as stored in a snapshot
type CamperRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// ActivityRecord is an activity as stored in a snapshot
type ActivityRecord struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Difficulty int    `json:"difficulty"`
}

// SignupRecord is a signup as stored in a snapshot. Owner ids refer to
// records of the same snapshot.
type SignupRecord struct {
	ID         int64 `json:"id"`
	CamperID   int64 `json:"camper_id"`
	ActivityID int64 `json:"activity_id"`
	Time       int   `json:"time"`
}

// Snapshot is the full content of the camp database
type Snapshot struct {
	Version    int              `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Campers    []CamperRecord   `json:"campers"`
	Activities []ActivityRecord `json:"activities"`
	Signups    []SignupRecord   `json:"signups"`
}

// ImportResult contains the results of an import
type ImportResult struct {
	Campers    int
	Activities int
	Signups    int
	BackupKey  string
	Warnings   []string
}

// ImportOptions controls Import
type ImportOptions struct {
	// Backup saves the current contents to the store before writing
	Backup bool
}

// Manager moves snapshots between the repositories and a file store
type Manager struct {
	repos  repositories.RepositoryManager
	store  storage.FileStorage
	logger *logrus.Logger
}

// NewManager creates a snapshot manager. store may be nil when snapshots
// are only built and imported in memory.
func NewManager(repos repositories.RepositoryManager, store storage.FileStorage, logger *logrus.Logger) *Manager {
	if logger == nil {
		logger = logrus.New()
	}
	return &Manager{repos: repos, store: store, logger: logger}
}

// Encode renders the snapshot as indented JSON
func (s *Snapshot) Encode() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Decode parses a snapshot document
func Decode(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	if snap.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	return &snap, nil
}

// Export reads every camper, activity and signup
func (m *Manager) Export(ctx context.Context) (*Snapshot, error) {
	campers, err := m.repos.Campers().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list campers: %w", err)
	}
	activities, err := m.repos.Activities().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	signups, err := m.repos.Signups().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list signups: %w", err)
	}

	snap := &Snapshot{
		Version:    FormatVersion,
		ExportedAt: time.Now().UTC(),
		Campers:    make([]CamperRecord, 0, len(campers)),
		Activities: make([]ActivityRecord, 0, len(activities)),
		Signups:    make([]SignupRecord, 0, len(signups)),
	}
	for _, c := range campers {
		snap.Campers = append(snap.Campers, CamperRecord{ID: c.ID, Name: c.Name, Age: c.Age})
	}
	for _, a := range activities {
		snap.Activities = append(snap.Activities, ActivityRecord{ID: a.ID, Name: a.Name, Difficulty: a.Difficulty})
	}
	for _, s := range signups {
		snap.Signups = append(snap.Signups, SignupRecord{ID: s.ID, CamperID: s.CamperID, ActivityID: s.ActivityID, Time: s.Time})
	}

	return snap, nil
}

// Save exports the database and writes it to the store under key
func (m *Manager) Save(ctx context.Context, key string) (*Snapshot, error) {
	if m.store == nil {
		return nil, fmt.Errorf("no snapshot store configured")
	}

	snap, err := m.Export(ctx)
	if err != nil {
		return nil, err
	}

	data, err := snap.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := m.store.Store(ctx, key, data, &storage.StoreOptions{Overwrite: true}); err != nil {
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}

	m.logger.WithFields(logrus.Fields{
		"key":        key,
		"campers":    len(snap.Campers),
		"activities": len(snap.Activities),
		"signups":    len(snap.Signups),
	}).Info("Snapshot saved")

	return snap, nil
}

// Load reads a snapshot from the store
func (m *Manager) Load(ctx context.Context, key string) (*Snapshot, error) {
	if m.store == nil {
		return nil, fmt.Errorf("no snapshot store configured")
	}

	data, err := m.store.Retrieve(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Decode(data)
}

// Backup saves the current contents under backup/<timestamp>.json and returns the key
func (m *Manager) Backup(ctx context.Context) (string, error) {
	key := fmt.Sprintf("backup/%s.json", time.Now().UTC().Format("20060102_150405"))
	if _, err := m.Save(ctx, key); err != nil {
		return "", err
	}
	return key, nil
}

// Import writes the snapshot in a single transaction. Records get fresh ids
// and signups are re-pointed at the imported owners.
func (m *Manager) Import(ctx context.Context, snap *Snapshot, opts ImportOptions) (*ImportResult, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot cannot be nil")
	}

	m.logger.Info("Starting snapshot import...")

	result := &ImportResult{Warnings: make([]string, 0)}

	if err := validate(snap); err != nil {
		return result, err
	}

	if opts.Backup && m.store != nil {
		key, err := m.Backup(ctx)
		if err != nil {
			m.logger.WithError(err).Warn("Failed to back up current data")
			result.Warnings = append(result.Warnings, fmt.Sprintf("failed to back up current data: %v", err))
		} else {
			result.BackupKey = key
		}
	}

	err := m.repos.WithTransaction(ctx, func(ctx context.Context) error {
		camperIDs := make(map[int64]int64, len(snap.Campers))
		for _, rec := range snap.Campers {
			camper := models.NewCamper(rec.Name, rec.Age)
			if err := m.repos.Campers().Create(ctx, camper); err != nil {
				return fmt.Errorf("failed to import camper %d: %w", rec.ID, err)
			}
			camperIDs[rec.ID] = camper.ID
		}

		activityIDs := make(map[int64]int64, len(snap.Activities))
		for _, rec := range snap.Activities {
			activity := models.NewActivity(rec.Name, rec.Difficulty)
			if err := m.repos.Activities().Create(ctx, activity); err != nil {
				return fmt.Errorf("failed to import activity %d: %w", rec.ID, err)
			}
			activityIDs[rec.ID] = activity.ID
		}

		signups := 0
		for _, rec := range snap.Signups {
			camperID, okCamper := camperIDs[rec.CamperID]
			activityID, okActivity := activityIDs[rec.ActivityID]
			if !okCamper || !okActivity {
				warning := fmt.Sprintf("skipped signup %d: camper %d or activity %d not in snapshot", rec.ID, rec.CamperID, rec.ActivityID)
				m.logger.Warn(warning)
				result.Warnings = append(result.Warnings, warning)
				continue
			}

			signup := models.NewSignup(camperID, activityID, rec.Time)
			if err := m.repos.Signups().Create(ctx, signup); err != nil {
				return fmt.Errorf("failed to import signup %d: %w", rec.ID, err)
			}
			signups++
		}

		result.Campers = len(camperIDs)
		result.Activities = len(activityIDs)
		result.Signups = signups
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("snapshot import failed: %w", err)
	}

	m.logger.WithFields(logrus.Fields{
		"campers":    result.Campers,
		"activities": result.Activities,
		"signups":    result.Signups,
		"warnings":   len(result.Warnings),
	}).Info("Snapshot import completed successfully")

	return result, nil
}

// validate checks every record against the model rules before anything is written
func validate(snap *Snapshot) error {
	seenCampers := make(map[int64]bool, len(snap.Campers))
	for _, rec := range snap.Campers {
		if seenCampers[rec.ID] {
			return repositories.ValidationError("camper", rec.ID, fmt.Errorf("duplicate camper id %d in snapshot", rec.ID))
		}
		seenCampers[rec.ID] = true

		if err := models.NewCamper(rec.Name, rec.Age).Validate(); err != nil {
			return repositories.ValidationError("camper", rec.ID, err)
		}
	}

	seenActivities := make(map[int64]bool, len(snap.Activities))
	for _, rec := range snap.Activities {
		if seenActivities[rec.ID] {
			return repositories.ValidationError("activity", rec.ID, fmt.Errorf("duplicate activity id %d in snapshot", rec.ID))
		}
		seenActivities[rec.ID] = true

		if err := models.NewActivity(rec.Name, rec.Difficulty).Validate(); err != nil {
			return repositories.ValidationError("activity", rec.ID, err)
		}
	}

	for _, rec := range snap.Signups {
		if err := models.ValidateIntRange(rec.Time, "time", models.MinSignupTime, models.MaxSignupTime); err != nil {
			return repositories.ValidationError("signup", rec.ID, err)
		}
	}

	return nil
}
