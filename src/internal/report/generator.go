package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/VectorBits/abi2sol/src/internal/iface"
	"github.com/VectorBits/abi2sol/src/internal/report/renderers"
)

// Report 一次目录转换的报告数据
type Report struct {
	Target      string
	GeneratedAt time.Time
	Summary     *iface.Summary
}

type Generator interface {
	Generate(report *Report) (string, error)
}

type MarkdownGenerator struct {
	r *renderers.MarkdownRenderer
}

func NewMarkdownGenerator() *MarkdownGenerator {
	return &MarkdownGenerator{r: renderers.NewMarkdownRenderer()}
}

func (g *MarkdownGenerator) Generate(report *Report) (string, error) {
	s := report.Summary
	if s == nil {
		return "", fmt.Errorf("report for %s has no summary", report.Target)
	}

	var b strings.Builder

	b.WriteString("# abi2sol Sweep Report\n\n")
	fmt.Fprintf(&b, "**Target**: %s\n", report.Target)
	fmt.Fprintf(&b, "**Input**: %s\n", g.r.RenderCode(s.InputDir))
	fmt.Fprintf(&b, "**Output**: %s\n", g.r.RenderCode(s.OutputDir))
	fmt.Fprintf(&b, "**Started**: %s\n", s.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Duration**: %s\n\n", s.Duration.Round(time.Millisecond))

	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(&b, "- **Artifacts**: %d\n", s.Total())
	fmt.Fprintf(&b, "- **Converted**: %d\n", s.Converted)
	fmt.Fprintf(&b, "- **Skipped**: %d\n", s.Skipped)
	fmt.Fprintf(&b, "- **Failed**: %d\n", s.Failed)
	fmt.Fprintf(&b, "- **Collisions**: %d\n\n", len(s.Collisions))

	if skipped := s.SkippedBy(); len(skipped) > 0 {
		reasons := make([]string, 0, len(skipped))
		for reason := range skipped {
			reasons = append(reasons, string(reason))
		}
		sort.Strings(reasons)

		b.WriteString("### Skips by reason\n\n")
		for _, reason := range reasons {
			fmt.Fprintf(&b, "- **%s**: %d\n", reason, skipped[iface.SkipReason(reason)])
		}
		b.WriteString("\n")
	}

	if failures := s.Failures(); len(failures) > 0 {
		b.WriteString("## Failures\n\n")
		rows := make([][]string, 0, len(failures))
		for _, f := range failures {
			kind, msg := "", ""
			if f.Err != nil {
				kind = string(f.Err.Kind)
				msg = f.Err.Err.Error()
			}
			rows = append(rows, []string{g.r.RenderCode(f.Path), kind, msg})
		}
		b.WriteString(g.r.RenderTable([]string{"Artifact", "Kind", "Error"}, rows))
		b.WriteString("\n")
	}

	if len(s.Collisions) > 0 {
		b.WriteString("## Collisions\n\n")
		rows := make([][]string, 0, len(s.Collisions))
		for _, c := range s.Collisions {
			rows = append(rows, []string{c.Interface, g.r.RenderCode(c.Overwritten), g.r.RenderCode(c.By)})
		}
		b.WriteString(g.r.RenderTable([]string{"Interface", "Overwritten", "By"}, rows))
		b.WriteString("\n")
	}

	b.WriteString("## Artifacts\n\n")
	rows := make([][]string, 0, len(s.Results))
	for _, res := range s.Results {
		detail := string(res.Reason)
		if res.Status == iface.StatusConverted {
			detail = fmt.Sprintf("%d functions", res.Functions)
		}
		if res.Err != nil {
			detail = string(res.Err.Kind)
		}
		rows = append(rows, []string{
			g.r.StatusIcon(string(res.Status)) + " " + string(res.Status),
			g.r.RenderCode(res.Path),
			res.Interface,
			detail,
		})
	}
	b.WriteString(g.r.RenderTable([]string{"Status", "Artifact", "Interface", "Detail"}, rows))

	return b.String(), nil
}
