package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

type Storage interface {
	Save(report *Report, content string) (string, error)
}

type FileStorage struct {
	fs        afero.Fs
	OutputDir string
}

func NewFileStorage(fs afero.Fs, outputDir string) *FileStorage {
	return &FileStorage{
		fs:        fs,
		OutputDir: outputDir,
	}
}

func sanitizeFilenameComponent(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') ||
			r == '.' || r == '_' || r == '-' {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	out := strings.Trim(b.String(), "._-")
	if out == "" {
		return "unknown"
	}
	return out
}

func (s *FileStorage) Save(report *Report, content string) (string, error) {
	if s.OutputDir == "" {
		s.OutputDir = "reports"
	}
	if err := s.fs.MkdirAll(s.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := fmt.Sprintf("sweep_report_%s_%d.md",
		sanitizeFilenameComponent(report.Target), report.GeneratedAt.UnixNano())
	reportPath := filepath.Join(s.OutputDir, filename)

	tmpFile, err := afero.TempFile(s.fs, s.OutputDir, filename+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp report file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = s.fs.Remove(tmpPath) }()

	if _, err := tmpFile.WriteString(content); err != nil {
		_ = tmpFile.Close()
		return "", fmt.Errorf("failed to write temp report file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp report file: %w", err)
	}
	if err := s.fs.Chmod(tmpPath, 0644); err != nil {
		return "", fmt.Errorf("failed to chmod temp report file: %w", err)
	}

	if err := s.fs.Rename(tmpPath, reportPath); err != nil {
		return "", fmt.Errorf("failed to finalize report file: %w", err)
	}

	return reportPath, nil
}
