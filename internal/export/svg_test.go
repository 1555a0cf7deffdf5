package export

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/dipolesim/internal/analysis"
	"github.com/san-kum/dipolesim/internal/record"
	"github.com/san-kum/dipolesim/internal/solver"
)

func TestPortraitToSVG(t *testing.T) {
	rec, err := record.FromTable(record.DefaultConstants(), [][]float64{
		{0, 0, 0},
		{1, 1, 2},
		{2, 2, 0},
	})
	require.NoError(t, err)

	svg := PortraitToSVG(analysis.PathPortrait(rec), 100, 50)
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Equal(t, 2, strings.Count(svg, "<path "))
	assert.Contains(t, svg, `stroke="#00ccff"`)
	assert.Contains(t, svg, `stroke="#ff00ff"`)
}

func TestPortraitToSVGSharedBounds(t *testing.T) {
	rec, err := record.FromTable(record.DefaultConstants(), [][]float64{
		{0, -1, -1},
		{1, 1, 1},
	})
	require.NoError(t, err)
	require.NoError(t, solver.NewIdeal().Apply(context.Background(), rec))

	svg := PortraitToSVG(analysis.PathPortrait(rec), 120, 120)
	lines := strings.Split(svg, "\n")

	var paths []string
	for _, l := range lines {
		if strings.HasPrefix(l, "<path ") {
			paths = append(paths, l[strings.Index(l, `d="`):])
		}
	}
	require.Len(t, paths, 2)
	assert.Equal(t, paths[0], paths[1])
}

func TestPortraitToSVGHandBuilt(t *testing.T) {
	p := &analysis.Portrait{Layers: []analysis.Layer{{
		Glyph:  '*',
		Points: []analysis.Point{{X: 0, Y: 0}, {X: 1, Y: 1}},
	}}}

	svg := PortraitToSVG(p, 120, 120)
	assert.Equal(t, 1, strings.Count(svg, "<path "))
	assert.Contains(t, svg, `d="M10.0,110.0 L110.0,10.0"`)
}

func TestPortraitToSVGEmpty(t *testing.T) {
	assert.Equal(t, "", PortraitToSVG(nil, 10, 10))
	assert.Equal(t, "", PortraitToSVG(&analysis.Portrait{}, 10, 10))
}
