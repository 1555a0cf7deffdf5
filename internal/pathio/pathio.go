package pathio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

var (
	ErrEmpty    = errors.New("pathio: no data rows")
	ErrColumns  = errors.New("pathio: inconsistent column count")
	ErrTimeStep = errors.New("pathio: time step must be positive")
)

type ParseError struct {
	Line  int
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pathio: line %d: cannot parse %q: %v", e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Read parses a numeric text table. Fields are separated by whitespace or
// commas, '#' starts a comment, and blank lines are skipped. Every row must
// have the same number of columns.
func Read(r io.Reader) ([][]float64, error) {
	sc := bufio.NewScanner(r)
	var table [][]float64
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\r'
		})
		if len(fields) == 0 {
			continue
		}

		row := make([]float64, len(fields))
		for j, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &ParseError{Line: line, Field: f, Err: err}
			}
			row[j] = v
		}
		if len(table) > 0 && len(row) != len(table[0]) {
			return nil, fmt.Errorf("%w: line %d has %d columns, want %d", ErrColumns, line, len(row), len(table[0]))
		}
		table = append(table, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return nil, ErrEmpty
	}
	return table, nil
}

func ReadFile(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// WithTimes prepends t_i = i*dt to each (x, y) row.
func WithTimes(xy [][]float64, dt float64) ([][]float64, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("%w: got %g", ErrTimeStep, dt)
	}
	out := make([][]float64, len(xy))
	for i, row := range xy {
		out[i] = append([]float64{float64(i) * dt}, row...)
	}
	return out, nil
}

func Write(w io.Writer, table [][]float64) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "# t x y"); err != nil {
		return err
	}
	for _, row := range table {
		for j, v := range row {
			if j > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func WriteFile(path string, table [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, table); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
