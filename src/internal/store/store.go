package store

import (
	"context"
	"fmt"
	"time"

	"github.com/VectorBits/abi2sol/src/internal/config"
	"github.com/VectorBits/abi2sol/src/internal/iface"
)

// Run 一次目录转换的记录
type Run struct {
	ID         uint      `gorm:"primaryKey"`
	Target     string    `gorm:"index;size:128"`
	InputDir   string
	OutputDir  string
	StartedAt  time.Time `gorm:"index"`
	DurationMs int64
	Converted  int
	Skipped    int
	Failed     int
	Collisions int
	Files      []FileRecord `gorm:"constraint:OnDelete:CASCADE"`
}

// FileRecord is one artifact of a recorded run.
type FileRecord struct {
	ID        uint `gorm:"primaryKey"`
	RunID     uint `gorm:"index"`
	Path      string
	Interface string `gorm:"size:256"`
	Output    string
	Status    string `gorm:"size:16"`
	Reason    string `gorm:"size:16"`
	Functions int
	ErrorKind string `gorm:"size:16"`
	Error     string
}

type Recorder struct {
	db *config.Database
}

// NewRecorder migrates the history tables and returns a recorder on db.
func NewRecorder(db *config.Database) (*Recorder, error) {
	if err := db.AutoMigrate(&Run{}, &FileRecord{}); err != nil {
		return nil, err
	}
	return &Recorder{db: db}, nil
}

func newRun(target string, s *iface.Summary) *Run {
	run := &Run{
		Target:     target,
		InputDir:   s.InputDir,
		OutputDir:  s.OutputDir,
		StartedAt:  s.StartedAt,
		DurationMs: s.Duration.Milliseconds(),
		Converted:  s.Converted,
		Skipped:    s.Skipped,
		Failed:     s.Failed,
		Collisions: len(s.Collisions),
		Files:      make([]FileRecord, 0, len(s.Results)),
	}
	for _, r := range s.Results {
		rec := FileRecord{
			Path:      r.Path,
			Interface: r.Interface,
			Output:    r.Output,
			Status:    string(r.Status),
			Reason:    string(r.Reason),
			Functions: r.Functions,
		}
		if r.Err != nil {
			rec.ErrorKind = string(r.Err.Kind)
			rec.Error = r.Err.Err.Error()
		}
		run.Files = append(run.Files, rec)
	}
	return run
}

// Record stores a finished sweep and its per-file results in one transaction.
func (r *Recorder) Record(ctx context.Context, target string, s *iface.Summary) (*Run, error) {
	run := newRun(target, s)
	if err := r.db.DB.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}
	return run, nil
}

// Recent returns the latest runs, newest first, without their files.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []Run
	err := r.db.DB.WithContext(ctx).
		Order("started_at DESC").Order("id DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	return runs, nil
}

func (r *Recorder) Files(ctx context.Context, runID uint) ([]FileRecord, error) {
	var files []FileRecord
	err := r.db.DB.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("id").
		Find(&files).Error
	if err != nil {
		return nil, fmt.Errorf("query files of run %d: %w", runID, err)
	}
	return files, nil
}
