package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/dipolesim/internal/record"
)

// PlotPaths draws the desired and observed x(t) and y(t), one graph per axis.
func PlotPaths(rec *record.Record, width, height int) string {
	if !rec.Initialized() {
		return ""
	}

	var sb strings.Builder
	for col, axis := range []string{"x", "y"} {
		desired := mat.Col(nil, col, rec.PathDesired)
		actual := mat.Col(nil, col, rec.PathActual)

		sb.WriteString(asciigraph.PlotMany([][]float64{desired, actual},
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
			asciigraph.Caption(fmt.Sprintf("%s(t): desired (blue) vs observed (red)", axis)),
		))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// PlotField draws both control field components.
func PlotField(rec *record.Record, width, height int) string {
	if !rec.Initialized() {
		return ""
	}
	return asciigraph.PlotMany([][]float64{mat.Col(nil, 0, rec.Field), mat.Col(nil, 1, rec.Field)},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Yellow),
		asciigraph.Caption("field: e_x (green), e_y (yellow)"),
	)
}

func PlotSpectrum(ps []float64, caption string, width, height int) string {
	if len(ps) == 0 {
		return ""
	}
	return asciigraph.Plot(ps,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
