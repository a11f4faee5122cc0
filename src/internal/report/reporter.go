package report

import (
	"fmt"
	"time"

	"github.com/VectorBits/abi2sol/src/internal/iface"
)

type Reporter struct {
	generator Generator
	storage   Storage
}

func NewReporter(generator Generator, storage Storage) *Reporter {
	return &Reporter{
		generator: generator,
		storage:   storage,
	}
}

func (r *Reporter) GenerateAndSave(report *Report) (string, error) {
	content, err := r.generator.Generate(report)
	if err != nil {
		return "", fmt.Errorf("failed to generate report: %w", err)
	}

	path, err := r.storage.Save(report, content)
	if err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}

	return path, nil
}

func NewReport(target string, summary *iface.Summary) *Report {
	return &Report{
		Target:      target,
		GeneratedAt: time.Now(),
		Summary:     summary,
	}
}
