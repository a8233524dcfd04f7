// Package journal records the progress of optimization runs in a SQLite
// database, so a run can be inspected afterwards or resumed from its last
// completed generation.
package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/esimov/lowpoly"
)

// ErrNoGeneration is returned when a run has no recorded generation.
var ErrNoGeneration = errors.New("journal: no generation recorded")

// Run is one invocation of the optimizer over a source image.
type Run struct {
	ID        string `gorm:"primaryKey;size:36"`
	Source    string
	Width     int
	Height    int
	Config    lowpoly.Config `gorm:"serializer:json"`
	CreatedAt time.Time
}

// Generation is the outcome of one generation of a run.
type Generation struct {
	ID              uint   `gorm:"primaryKey"`
	RunID           string `gorm:"size:36;uniqueIndex:idx_run_generation"`
	Index           int    `gorm:"column:generation;uniqueIndex:idx_run_generation"`
	Faces           int
	MeanFitness     float64
	SelectedFitness float64
	CacheHits       uint64
	CacheMisses     uint64
	Generated       time.Duration
	Output          string
	Points          []lowpoly.Point `gorm:"serializer:json"`
	CreatedAt       time.Time
}

// Journal is a handle to the journal database.
type Journal struct {
	db *gorm.DB
}

// Open opens, creating it if needed, the journal stored at path.
// Use ":memory:" for a throwaway journal.
func Open(path string) (*Journal, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Run{}, &Generation{}); err != nil {
		return nil, fmt.Errorf("journal: migrate: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Start registers a new run and returns it with a fresh id.
func (j *Journal) Start(source string, width, height int, cfg lowpoly.Config) (*Run, error) {
	run := &Run{
		ID:     uuid.New().String(),
		Source: source,
		Width:  width,
		Height: height,
		Config: cfg,
	}
	if err := j.db.Create(run).Error; err != nil {
		return nil, fmt.Errorf("journal: start run: %w", err)
	}
	return run, nil
}

// Run returns the run registered under id.
func (j *Journal) Run(id string) (*Run, error) {
	var run Run
	if err := j.db.First(&run, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("journal: run %s: %w", id, err)
	}
	return &run, nil
}

// Record stores the report of a finished generation of the run.
func (j *Journal) Record(runID string, r lowpoly.Report) error {
	g := &Generation{
		RunID:           runID,
		Index:           r.Index,
		MeanFitness:     r.MeanFitness,
		SelectedFitness: r.SelectedFitness,
		CacheHits:       r.Cache.Hits,
		CacheMisses:     r.Cache.Misses,
		Generated:       r.Generated,
		Output:          r.Output,
		Points:          r.Points,
	}
	if r.Population != nil {
		g.Faces = len(r.Population.Faces)
	}
	if err := j.db.Create(g).Error; err != nil {
		return fmt.Errorf("journal: record generation %d: %w", r.Index, err)
	}
	return nil
}

// History returns the recorded generations of the run in order.
func (j *Journal) History(runID string) ([]Generation, error) {
	var gens []Generation
	err := j.db.Where("run_id = ?", runID).Order("generation asc").Find(&gens).Error
	return gens, err
}

// Latest returns the last recorded generation of the run.
func (j *Journal) Latest(runID string) (*Generation, error) {
	var gen Generation
	err := j.db.Where("run_id = ?", runID).Order("generation desc").First(&gen).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoGeneration
	}
	if err != nil {
		return nil, err
	}
	return &gen, nil
}

// Resume builds the resume point of a run from its last recorded generation.
func (j *Journal) Resume(runID string) (*lowpoly.Resume, error) {
	gen, err := j.Latest(runID)
	if err != nil {
		return nil, err
	}
	return &lowpoly.Resume{Index: gen.Index, Points: gen.Points}, nil
}
