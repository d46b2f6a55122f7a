package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fepslab/feps/types"
)

// snapshotRow is the persisted form of a snapshot: scalar parameters as
// columns for querying, the clip graph as a JSON payload.
type snapshotRow struct {
	ID         string    `gorm:"primaryKey;size:64"`
	CreatedAt  time.Time `gorm:"index"`
	NumClones  int
	Gamma      float64
	BaseReward float64
	Payload    []byte
}

func (snapshotRow) TableName() string { return "feps_snapshots" }

// GormStore persists snapshots in SQLite through GORM.
type GormStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormStore opens (or creates) the SQLite database at path and migrates
// the snapshot table. Avoid ":memory:" here; the connection pool would give
// each connection its own empty database.
func NewGormStore(path string, logger *zap.Logger) (*GormStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "failed to open sqlite database").WithCause(err)
	}
	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "failed to migrate snapshot table").WithCause(err)
	}

	return &GormStore{
		db:     db,
		logger: logger.With(zap.String("component", "snapshot_store_gorm")),
	}, nil
}

// Save upserts the snapshot row.
func (s *GormStore) Save(ctx context.Context, snap *types.MemorySnapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now()
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	row := snapshotRow{
		ID:         snap.ID,
		CreatedAt:  snap.CreatedAt,
		NumClones:  snap.NumClones,
		Gamma:      snap.Gamma,
		BaseReward: snap.BaseReward,
		Payload:    payload,
	}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return types.NewError(types.ErrStoreUnavailable, "failed to save snapshot").WithCause(err)
	}

	s.logger.Debug("snapshot saved",
		zap.String("id", snap.ID),
		zap.Int("bytes", len(payload)))
	return nil
}

// Load fetches and decodes one snapshot.
func (s *GormStore) Load(ctx context.Context, id string) (*types.MemorySnapshot, error) {
	var row snapshotRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound(id)
	}
	if err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "failed to load snapshot").WithCause(err)
	}

	var snap types.MemorySnapshot
	if err := json.Unmarshal(row.Payload, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Latest returns the most recently created snapshot.
func (s *GormStore) Latest(ctx context.Context) (*types.MemorySnapshot, error) {
	var row snapshotRow
	err := s.db.WithContext(ctx).Order("created_at DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("latest")
	}
	if err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "failed to load latest snapshot").WithCause(err)
	}

	var snap types.MemorySnapshot
	if err := json.Unmarshal(row.Payload, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// List returns snapshot IDs newest first.
func (s *GormStore) List(ctx context.Context, limit int) ([]string, error) {
	q := s.db.WithContext(ctx).Model(&snapshotRow{}).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var ids []string
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, types.NewError(types.ErrStoreUnavailable, "failed to list snapshots").WithCause(err)
	}
	return ids, nil
}

// Delete removes a snapshot row.
func (s *GormStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&snapshotRow{}, "id = ?", id).Error; err != nil {
		return types.NewError(types.ErrStoreUnavailable, "failed to delete snapshot").WithCause(err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
