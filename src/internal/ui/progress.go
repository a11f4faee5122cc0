package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/VectorBits/abi2sol/src/internal/iface"
)

const Clear = "\033[2K\r"

type ProgressBar struct {
	out         io.Writer
	total       int
	current     int
	failed      int
	startTime   time.Time
	description string
	mu          sync.Mutex
	width       int
}

func NewProgressBar(out io.Writer, total int, description string) *ProgressBar {
	return &ProgressBar{
		out:         out,
		total:       total,
		startTime:   time.Now(),
		description: description,
		width:       40, // 进度条长度
	}
}

// SetTotal is used once discovery knows how many artifacts there are.
func (pb *ProgressBar) SetTotal(total int) {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	pb.total = total
	pb.render()
}

// Observe advances the bar for one converted, skipped or failed artifact.
func (pb *ProgressBar) Observe(r iface.FileResult) {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	pb.current++
	if r.Status == iface.StatusFailed {
		pb.failed++
		fmt.Fprint(pb.out, Clear)
		fmt.Fprintf(pb.out, " %s✗ %s%s: %v\n", Red, r.Path, Reset, r.Err)
	}
	pb.render()
}

func (pb *ProgressBar) Finish() {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	// 确保进度满格
	pb.current = pb.total
	fmt.Fprint(pb.out, Clear)
	pb.render()
	fmt.Fprintln(pb.out)
}

func (pb *ProgressBar) render() {
	percent := 1.0
	if pb.total > 0 {
		percent = float64(pb.current) / float64(pb.total)
	}
	if percent > 1.0 {
		percent = 1.0
	}

	filled := int(float64(pb.width) * percent)
	bar := strings.Repeat("=", filled)
	if filled < pb.width {
		bar += ">" + strings.Repeat(".", pb.width-filled-1)
	}

	elapsed := time.Since(pb.startTime)
	rate := float64(pb.current) / elapsed.Seconds()
	remaining := time.Duration(0)
	if rate > 0 && pb.total > pb.current {
		remaining = time.Duration(float64(pb.total-pb.current)/rate) * time.Second
	}
	etaStr := fmt.Sprintf("%02dm%02ds", int(remaining.Minutes()), int(remaining.Seconds())%60)

	barColor := Cyan
	if percent >= 1.0 {
		barColor = Green
	}

	failColor := Green
	if pb.failed > 0 {
		failColor = Red
	}

	fmt.Fprintf(pb.out, "%s%s %s[%s]%s %.0f%% | %d/%d | ETA: %s | Failed: %s%d%s",
		Clear,
		pb.description,
		barColor, bar, Reset,
		percent*100,
		pb.current, pb.total,
		etaStr,
		failColor, pb.failed, Reset,
	)
}
