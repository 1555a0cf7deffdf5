package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/dipolesim/internal/record"
	"github.com/san-kum/dipolesim/internal/storage"
)

// Summary renders a run's metadata, constants, metrics and noise profile.
func Summary(meta *storage.RunMetadata, rec *record.Record) string {
	var sb strings.Builder

	sb.WriteString(Title.Render(meta.ID))
	sb.WriteString("\n")
	sb.WriteString(Subtle.Render(meta.Timestamp.Format("2006-01-02 15:04:05")))
	sb.WriteString("\n\n")

	c := meta.Constants
	rows := [][2]string{
		{"label", meta.Label},
		{"solver", meta.Solver},
		{"points", fmt.Sprintf("%d", meta.Points)},
		{"t", fmt.Sprintf("[%.4g, %.4g]", meta.TStart, meta.TEnd)},
		{"m", fmt.Sprintf("%d (basis %d)", c.M, c.Dim())},
		{"B / mu", fmt.Sprintf("%g / %g", c.B, c.Mu)},
		{"hbar / K / w1", fmt.Sprintf("%g / %g / %g", c.Hbar, c.K, c.W1)},
		{"noise", fmt.Sprintf("%d trials, sigma %g, seed %d", meta.Trials, meta.Sigma, meta.Seed)},
	}
	sb.WriteString(Panel.Render(table(rows)))
	sb.WriteString("\n")

	if len(meta.Metrics) > 0 {
		names := make([]string, 0, len(meta.Metrics))
		for name := range meta.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)

		mrows := make([][2]string, len(names))
		for i, name := range names {
			mrows[i] = [2]string{name, fmt.Sprintf("%.6g", meta.Metrics[name])}
		}
		sb.WriteString(Panel.Render(table(mrows)))
		sb.WriteString("\n")
	}

	if rec != nil && rec.Initialized() {
		sd := make([]float64, rec.N())
		for i := range sd {
			sd[i] = math.Hypot(rec.Noise.SD.At(i, 0), rec.Noise.SD.At(i, 1))
		}
		sb.WriteString(MetricLabel.Render("noise sd  "))
		sb.WriteString(Sparkline(sd, 60))
		sb.WriteString("\n")
	}

	return sb.String()
}

func table(rows [][2]string) string {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = MetricLabel.Render(fmt.Sprintf("%-*s", width, r[0])) + "  " + MetricValue.Render(r[1])
	}
	return strings.Join(lines, "\n")
}
