package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/VectorBits/abi2sol/src/internal/iface"
)

const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
	Gray   = "\033[37m"
	Bold   = "\033[1m"
)

func PrintBanner(w io.Writer, version string) {
	banner := `
       _     _ ___           _ 
  __ _| |__ (_)_  )___  ___ | |
 / _` + "`" + ` | '_ \| |/ /(_-< / _ \| |
 \__,_|_.__/|_/___/__/ \___/|_|
`
	fmt.Fprintln(w, Cyan+banner+Reset)
	fmt.Fprintln(w, Gray+"  "+version+" - Solidity interfaces from compiled ABI artifacts"+Reset)
	fmt.Fprintln(w)
}

// TargetSummary pairs a configured target with its sweep result.
type TargetSummary struct {
	Target  string
	Summary *iface.Summary
}

// PrintSummary 每个目标一行，最后一行是合计
func PrintSummary(w io.Writer, rows []TargetSummary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Target", "Output", "Artifacts", "Converted", "Skipped", "Failed", "Collisions", "Duration"})

	var total, converted, skipped, failed, collisions int
	var elapsed time.Duration
	for _, r := range rows {
		s := r.Summary
		if s == nil {
			continue
		}
		table.Append([]string{
			r.Target,
			s.OutputDir,
			fmt.Sprintf("%d", s.Total()),
			fmt.Sprintf("%d", s.Converted),
			fmt.Sprintf("%d", s.Skipped),
			fmt.Sprintf("%d", s.Failed),
			fmt.Sprintf("%d", len(s.Collisions)),
			s.Duration.Round(time.Millisecond).String(),
		})
		total += s.Total()
		converted += s.Converted
		skipped += s.Skipped
		failed += s.Failed
		collisions += len(s.Collisions)
		if s.Duration > elapsed {
			elapsed = s.Duration
		}
	}

	if len(rows) > 1 {
		table.SetFooter([]string{
			"Total", "",
			fmt.Sprintf("%d", total),
			fmt.Sprintf("%d", converted),
			fmt.Sprintf("%d", skipped),
			fmt.Sprintf("%d", failed),
			fmt.Sprintf("%d", collisions),
			elapsed.Round(time.Millisecond).String(),
		})
	}
	table.Render()
}

// PrintFailures lists failed artifacts under the summary table.
func PrintFailures(w io.Writer, rows []TargetSummary) {
	for _, r := range rows {
		if r.Summary == nil {
			continue
		}
		for _, f := range r.Summary.Failures() {
			fmt.Fprintf(w, Red+"  ✗ "+Reset+"%s "+Gray+"%v"+Reset+"\n", f.Path, f.Err)
		}
	}
}

func PrintTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.Render()
}
