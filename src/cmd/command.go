package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/VectorBits/abi2sol/src/internal/config"
	"github.com/VectorBits/abi2sol/src/internal/iface"
	"github.com/VectorBits/abi2sol/src/internal/logger"
	"github.com/VectorBits/abi2sol/src/internal/report"
	"github.com/VectorBits/abi2sol/src/internal/store"
	"github.com/VectorBits/abi2sol/src/internal/ui"
)

// ErrFilesFailed is returned when a sweep finished but some artifacts failed.
var ErrFilesFailed = errors.New("some artifacts failed to convert")

func targetName(t config.TargetConfig, i int) string {
	if t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("target-%d", i+1)
}

// ExecuteGenerate 转换所有目标，目标之间互不影响
func ExecuteGenerate(ctx context.Context, fs afero.Fs, out io.Writer, cfg config.GenerateConfiguration) error {
	if len(cfg.Targets) == 0 {
		return errors.New("no targets configured")
	}
	if err := config.ValidateTargets(cfg.Targets); err != nil {
		return err
	}

	var recorder *store.Recorder
	if cfg.Record {
		db, err := config.OpenDatabase(cfg.Database)
		if err != nil {
			return fmt.Errorf("open history database: %w", err)
		}
		defer db.Close()

		recorder, err = store.NewRecorder(db)
		if err != nil {
			return err
		}
	}

	var reporter *report.Reporter
	if cfg.ReportDir != "" {
		reporter = report.NewReporter(report.NewMarkdownGenerator(), report.NewFileStorage(fs, cfg.ReportDir))
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = config.DefaultConcurrency
	}
	// 多个目标并行时进度条会互相覆盖
	showProgress := len(cfg.Targets) == 1 || concurrency == 1

	rows := make([]ui.TargetSummary, len(cfg.Targets))
	errs := make([]error, len(cfg.Targets))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, t := range cfg.Targets {
		i, t := i, t
		name := targetName(t, i)
		g.Go(func() error {
			summary, err := runTarget(ctx, fs, out, cfg, name, t, showProgress)
			rows[i] = ui.TargetSummary{Target: name, Summary: summary}
			if err != nil {
				errs[i] = fmt.Errorf("target %s: %w", name, err)
				return errs[i]
			}

			if reporter != nil {
				path, err := reporter.GenerateAndSave(report.NewReport(name, summary))
				if err != nil {
					logger.Error("target %s: %v", name, err)
				} else {
					logger.Info("Report saved: %s", path)
				}
			}
			if recorder != nil {
				run, err := recorder.Record(ctx, name, summary)
				if err != nil {
					logger.Error("target %s: %v", name, err)
				} else {
					logger.Debug("target %s recorded as run %d", name, run.ID)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := errors.Join(errs...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		ui.PrintSummary(out, rows)
		return err
	}

	ui.PrintSummary(out, rows)
	ui.PrintFailures(out, rows)

	failed := 0
	for _, r := range rows {
		if r.Summary != nil {
			failed += r.Summary.Failed
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d artifact(s)", ErrFilesFailed, failed)
	}
	return nil
}

func runTarget(ctx context.Context, fs afero.Fs, out io.Writer, cfg config.GenerateConfiguration, name string, t config.TargetConfig, progress bool) (*iface.Summary, error) {
	opts := iface.Options{
		SolidityVersion: cfg.SolidityVersion,
		IgnorePaths:     cfg.IgnorePaths,
		Selectors:       cfg.Selectors,
	}

	var bar *ui.ProgressBar
	if progress {
		bar = ui.NewProgressBar(out, 0, name)
		opts.OnDiscover = bar.SetTotal
		opts.OnFile = bar.Observe
	}

	logger.Info("Converting %s -> %s", t.Input, t.Output)
	summary, err := iface.NewConverter(fs, opts).ConvertDirectory(ctx, t.Input, t.Output)
	if bar != nil && summary.Total() > 0 {
		bar.Finish()
	}
	if err != nil {
		return summary, err
	}

	logger.InfoFileOnly("target %s: %d converted, %d skipped, %d failed in %s",
		name, summary.Converted, summary.Skipped, summary.Failed, summary.Duration.Round(time.Millisecond))
	return summary, nil
}

// ExecuteHistory prints the most recent recorded sweeps.
func ExecuteHistory(ctx context.Context, out io.Writer, dbCfg config.DatabaseConfig, limit int) error {
	db, err := config.OpenDatabase(dbCfg)
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer db.Close()

	recorder, err := store.NewRecorder(db)
	if err != nil {
		return err
	}

	runs, err := recorder.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No sweeps recorded yet.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.ID),
			r.Target,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			(time.Duration(r.DurationMs) * time.Millisecond).String(),
			fmt.Sprintf("%d", r.Converted),
			fmt.Sprintf("%d", r.Skipped),
			fmt.Sprintf("%d", r.Failed),
			fmt.Sprintf("%d", r.Collisions),
			r.OutputDir,
		})
	}
	ui.PrintTable(out, []string{"Run", "Target", "Started", "Duration", "Converted", "Skipped", "Failed", "Collisions", "Output"}, rows)
	return nil
}
