package iface

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies per-file failures.
type ErrorKind string

const (
	KindRead  ErrorKind = "ReadError"
	KindParse ErrorKind = "ParseError"
	KindWrite ErrorKind = "WriteError"
)

// FileError 单个产物文件的失败，不会中断整个目录的转换
type FileError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// SkipReason explains a skipped artifact.
type SkipReason string

const (
	ReasonNoABI   SkipReason = "no-abi"
	ReasonIgnored SkipReason = "ignored"
	ReasonEmpty   SkipReason = "empty"
)

// FileResult is the outcome of converting one artifact.
type FileResult struct {
	Path      string
	Interface string
	Output    string
	Status    Status
	Reason    SkipReason
	Functions int
	Selectors string // manifest path, when written
	Err       *FileError
}

// Collision records two artifacts that produced the same interface file.
type Collision struct {
	Interface   string
	Output      string
	Overwritten string // artifact whose interface was replaced
	By          string
}

// Summary 一次目录转换的汇总
type Summary struct {
	InputDir   string
	OutputDir  string
	StartedAt  time.Time
	Duration   time.Duration
	Results    []FileResult
	Collisions []Collision

	Converted int
	Skipped   int
	Failed    int
}

func NewSummary(inputDir, outputDir string) *Summary {
	return &Summary{
		InputDir:  inputDir,
		OutputDir: outputDir,
		StartedAt: time.Now(),
		Results:   make([]FileResult, 0),
	}
}

func (s *Summary) Add(r FileResult) {
	s.Results = append(s.Results, r)
	switch r.Status {
	case StatusConverted:
		s.Converted++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}

func (s *Summary) AddCollision(c Collision) {
	s.Collisions = append(s.Collisions, c)
}

func (s *Summary) Finish() {
	s.Duration = time.Since(s.StartedAt)
}

// Total is the number of artifacts visited.
func (s *Summary) Total() int { return len(s.Results) }

// Failures returns the failed results in sweep order.
func (s *Summary) Failures() []FileResult {
	var out []FileResult
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			out = append(out, r)
		}
	}
	return out
}

// SkippedBy counts skipped results per reason.
func (s *Summary) SkippedBy() map[SkipReason]int {
	out := make(map[SkipReason]int)
	for _, r := range s.Results {
		if r.Status == StatusSkipped {
			out[r.Reason]++
		}
	}
	return out
}

// Err joins every per-file error, nil when nothing failed.
func (s *Summary) Err() error {
	var errs []error
	for _, r := range s.Failures() {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}
