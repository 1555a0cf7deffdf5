// Package record holds the data container for one simulation run.
//
// A [Record] is created once per run, either constants-only with [New] or bound
// to a desired path with [FromTable]. The input table has one row per time
// point, [t, x, y], and is validated in this order:
//
//   - type: must be [][]float64, [][]float32, [][]int or a gonum mat.Matrix
//   - shape: two dimensions, exactly 3 columns, at least 2 rows
//   - values: every entry finite
//   - time: column 0 strictly increasing
//
// All checks run before any array is allocated, so a failed construction has
// no observable effect. Failures are *[ValidationError] values matching
// [ErrInvalidType], [ErrInvalidShape] or [ErrInvalidValue] via errors.Is.
//
// # Collaborators
//
// Field solvers write Field, PathActual and State; noise analyzers write
// Noise. The record performs no computation beyond validation and allocation.
// Stages run one after another; parallel writers must partition by index.
package record
