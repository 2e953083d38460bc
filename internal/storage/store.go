// Package storage keeps a log of headless runs in a SQLite database. The
// log is write-once history for listing and plotting; it is never used to
// resume a simulation.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/san-kum/orrery/internal/dynamo"
	"github.com/san-kum/orrery/internal/telemetry"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open opens or creates the database at path and migrates the schema.
func Open(path string, log zerolog.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        500,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open run log %s: %w", path, err)
	}
	if err := db.Exec("PRAGMA journal_mode = WAL;").Error; err != nil {
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if err := db.AutoMigrate(&Run{}, &Sample{}, &Event{}); err != nil {
		return nil, fmt.Errorf("migrate run log: %w", err)
	}
	log.Debug().Str("path", path).Msg("run log ready")
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Begin records the start of a run. cfg is stored as JSON.
func (s *Store) Begin(ctx context.Context, table string, dt float64, bodies int, cfg any) (*Run, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	run := &Run{
		Name:      fmt.Sprintf("%s_%d", table, now.Unix()),
		Table:     table,
		Dt:        dt,
		BodyCount: bodies,
		StartedAt: now,
		Config:    raw,
	}
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}
	return run, nil
}

// RecordStep stores every body, the barycenter and an active rocket.
func (s *Store) RecordStep(ctx context.Context, runID uint, step int, bs dynamo.Bodies, bary dynamo.Vec2, rocket *dynamo.Projectile) error {
	rows := make([]Sample, 0, len(bs)+2)
	for i := range bs {
		b := &bs[i]
		rows = append(rows, Sample{RunID: runID, Step: step, Body: b.Name, X: b.Pos.X, Y: b.Pos.Y, VX: b.Vel.X, VY: b.Vel.Y})
	}
	rows = append(rows, Sample{RunID: runID, Step: step, Body: BarycenterBody, X: bary.X, Y: bary.Y})
	if rocket.Active() {
		rows = append(rows, Sample{RunID: runID, Step: step, Body: RocketBody, X: rocket.Pos.X, Y: rocket.Pos.Y, VX: rocket.Vel.X, VY: rocket.Vel.Y})
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}

func (s *Store) RecordEvent(ctx context.Context, runID uint, step int, kind, detail string) error {
	ev := Event{RunID: runID, Step: step, Kind: kind, Detail: detail, At: time.Now().UTC()}
	return s.db.WithContext(ctx).Create(&ev).Error
}

// Finish stamps the end of a run. A non-nil halt error is kept as text.
// Non-finite metric values are dropped.
func (s *Store) Finish(ctx context.Context, runID uint, steps int, metrics map[string]float64, halt error) error {
	finite := make(map[string]float64, len(metrics))
	for k, v := range metrics {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite[k] = v
		}
	}
	raw, err := json.Marshal(finite)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	updates := map[string]any{
		"steps":    steps,
		"ended_at": now,
		"metrics":  datatypes.JSON(raw),
	}
	if halt != nil {
		updates["halted"] = halt.Error()
	}
	res := s.db.WithContext(ctx).Model(&Run{}).Where("id = ?", runID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("finish run %d: %w", runID, ErrRunNotFound)
	}
	return nil
}

// List returns runs newest first.
func (s *Store) List(ctx context.Context) ([]Run, error) {
	var runs []Run
	err := s.db.WithContext(ctx).Order("id desc").Find(&runs).Error
	return runs, err
}

func (s *Store) Load(ctx context.Context, id uint) (*Run, error) {
	var run Run
	err := s.db.WithContext(ctx).First(&run, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("run %d: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Track returns one body's samples in step order.
func (s *Store) Track(ctx context.Context, runID uint, body string) ([]Sample, error) {
	var rows []Sample
	err := s.db.WithContext(ctx).
		Where("run_id = ? AND body = ?", runID, body).
		Order("step").
		Find(&rows).Error
	return rows, err
}

// BodyNames lists the bodies sampled in a run.
func (s *Store) BodyNames(ctx context.Context, runID uint) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&Sample{}).
		Where("run_id = ?", runID).
		Distinct().Order("body").
		Pluck("body", &names).Error
	return names, err
}

func (s *Store) Events(ctx context.Context, runID uint) ([]Event, error) {
	var evs []Event
	err := s.db.WithContext(ctx).Where("run_id = ?", runID).Order("step, id").Find(&evs).Error
	return evs, err
}

// MetricValues decodes the stored metrics of a run.
func (r *Run) MetricValues() (map[string]float64, error) {
	out := map[string]float64{}
	if len(r.Metrics) == 0 {
		return out, nil
	}
	err := json.Unmarshal(r.Metrics, &out)
	return out, err
}

// Sink adapts a run to telemetry.Sink.
func (s *Store) Sink(runID uint) telemetry.Sink {
	return &runSink{store: s, runID: runID}
}

type runSink struct {
	store *Store
	runID uint
}

func (r *runSink) Record(ctx context.Context, smp telemetry.Sample) error {
	return r.store.RecordStep(ctx, r.runID, smp.Step, smp.Bodies, smp.Barycenter, smp.Rocket)
}

func (r *runSink) Close() {}
