package record_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/dipolesim/internal/record"
)

func sampleTable() [][]float64 {
	return [][]float64{
		{0, 1, 11},
		{1, 2, 12},
		{2, 3, 13},
		{3, 4, 14},
		{4, 5, 15},
	}
}

func isZero(m mat.Matrix) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if m.At(i, j) != 0 {
				return false
			}
		}
	}
	return true
}

var _ = Describe("Record", func() {
	var consts record.Constants

	BeforeEach(func() {
		consts = record.DefaultConstants()
	})

	Describe("constants-only construction", func() {
		It("exposes the constants and no path data", func() {
			r, err := record.New(consts)
			Expect(err).NotTo(HaveOccurred())

			Expect(r.Initialized()).To(BeFalse())
			Expect(r.N()).To(Equal(0))
			Expect(r.T).To(BeNil())
			Expect(r.PathDesired).To(BeNil())
			Expect(r.PathActual).To(BeNil())
			Expect(r.Field).To(BeNil())
			Expect(r.State).To(BeNil())
			Expect(r.Noise.Mean).To(BeNil())
			Expect(r.Noise.SD).To(BeNil())
			Expect(r.Table()).To(BeNil())

			c := r.Const()
			Expect(c.M).To(Equal(8))
			Expect(c.B).To(Equal(1.0))
			Expect(c.Mu).To(Equal(1.0))
			Expect(c.Hbar).To(Equal(1.0))
			Expect(c.K).To(Equal(1.0))
			Expect(c.W1).To(Equal(c.B / c.Hbar))
		})
	})

	Describe("construction from a table", func() {
		It("binds the path and zeroes every derived array", func() {
			r, err := record.FromTable(consts, sampleTable())
			Expect(err).NotTo(HaveOccurred())

			Expect(r.Initialized()).To(BeTrue())
			Expect(r.N()).To(Equal(5))
			Expect(r.T).To(Equal([]float64{0, 1, 2, 3, 4}))

			want := mat.NewDense(5, 2, []float64{1, 11, 2, 12, 3, 13, 4, 14, 5, 15})
			Expect(mat.Equal(r.PathDesired, want)).To(BeTrue())

			rows, cols := r.PathActual.Dims()
			Expect([]int{rows, cols}).To(Equal([]int{5, 2}))
			Expect(isZero(r.PathActual)).To(BeTrue())

			rows, cols = r.Field.Dims()
			Expect([]int{rows, cols}).To(Equal([]int{5, 2}))
			Expect(isZero(r.Field)).To(BeTrue())

			rows, cols = r.State.Dims()
			Expect([]int{rows, cols}).To(Equal([]int{17, 5}))
			for i := 0; i < rows; i++ {
				for j := 0; j < cols; j++ {
					Expect(r.State.At(i, j)).To(Equal(complex(0, 0)))
				}
			}

			for _, m := range []*mat.Dense{r.Noise.Mean, r.Noise.SD} {
				rows, cols = m.Dims()
				Expect([]int{rows, cols}).To(Equal([]int{5, 2}))
				Expect(isZero(m)).To(BeTrue())
			}
		})

		It("sizes the state from m", func() {
			c, err := record.NewConstants(2, 0.5, 3)
			Expect(err).NotTo(HaveOccurred())

			r, err := record.FromTable(c, sampleTable())
			Expect(err).NotTo(HaveOccurred())

			rows, cols := r.State.Dims()
			Expect(rows).To(Equal(5))
			Expect(cols).To(Equal(5))
		})

		It("copies the caller's table", func() {
			table := sampleTable()
			r, err := record.FromTable(consts, table)
			Expect(err).NotTo(HaveOccurred())

			table[0][1] = 99
			table[1][0] = -5
			Expect(r.PathDesired.At(0, 0)).To(Equal(1.0))
			Expect(r.T[1]).To(Equal(1.0))
			Expect(r.Table()).To(Equal(sampleTable()))
		})

		It("accepts integer and float32 tables", func() {
			r, err := record.FromTable(consts, [][]int{{0, 1, 11}, {1, 2, 12}})
			Expect(err).NotTo(HaveOccurred())
			Expect(r.T).To(Equal([]float64{0, 1}))

			r, err = record.FromTable(consts, [][]float32{{0, 0.5, 1}, {0.25, 1, 2}})
			Expect(err).NotTo(HaveOccurred())
			Expect(r.T).To(Equal([]float64{0, 0.25}))
			Expect(r.PathDesired.At(0, 0)).To(Equal(0.5))
		})

		It("accepts a gonum matrix", func() {
			m := mat.NewDense(3, 3, []float64{
				0, 1, 2,
				0.5, 3, 4,
				1, 5, 6,
			})
			r, err := record.FromTable(consts, m)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.N()).To(Equal(3))
			Expect(r.PathDesired.At(2, 1)).To(Equal(6.0))

			r, err = record.FromTable(consts, m.T().T())
			Expect(err).NotTo(HaveOccurred())
			Expect(r.N()).To(Equal(3))
		})
	})

	Describe("validation", func() {
		DescribeTable("rejects non-array input with invalid-argument-type",
			func(input any) {
				r, err := record.FromTable(consts, input)
				Expect(r).To(BeNil())
				Expect(err).To(MatchError(record.ErrInvalidType))
				Expect(record.KindOf(err)).To(Equal(record.TypeKind))
			},
			Entry("nil", nil),
			Entry("scalar", 3.0),
			Entry("string", "0 1 2"),
			Entry("generic list", []any{[]any{0, 1, 2}, []any{1, 2, 3}}),
			Entry("map", map[string]float64{"t": 0}),
			Entry("nil matrix", (*mat.Dense)(nil)),
			Entry("nil symmetric matrix", (*mat.SymDense)(nil)),
			Entry("nil vector", (*mat.VecDense)(nil)),
		)

		DescribeTable("rejects bad shapes with invalid-argument-shape",
			func(input any) {
				r, err := record.FromTable(consts, input)
				Expect(r).To(BeNil())
				Expect(err).To(MatchError(record.ErrInvalidShape))
				Expect(record.KindOf(err)).To(Equal(record.ShapeKind))
			},
			Entry("two columns", [][]float64{{0, 1}, {1, 2}, {2, 3}}),
			Entry("four columns", [][]float64{{0, 1, 2, 3}, {1, 2, 3, 4}}),
			Entry("ragged rows", [][]float64{{0, 1, 2}, {1, 2}}),
			Entry("one-dimensional", []float64{0, 1, 2}),
			Entry("single row", [][]float64{{0, 1, 2}}),
			Entry("empty", [][]float64{}),
			Entry("two-column matrix", mat.NewDense(3, 2, nil)),
		)

		DescribeTable("rejects non-finite entries with invalid-argument-value",
			func(row, col int, v float64) {
				table := sampleTable()
				table[row][col] = v

				r, err := record.FromTable(consts, table)
				Expect(r).To(BeNil())
				Expect(err).To(MatchError(record.ErrInvalidValue))
				Expect(errors.Is(err, record.ErrNonFinite)).To(BeTrue())

				var ve *record.ValidationError
				Expect(errors.As(err, &ve)).To(BeTrue())
				Expect(ve.Row).To(Equal(row))
				Expect(ve.Col).To(Equal(col))
			},
			Entry("NaN in time", 2, 0, math.NaN()),
			Entry("NaN in x", 0, 1, math.NaN()),
			Entry("+Inf in y", 4, 2, math.Inf(1)),
			Entry("-Inf in x", 3, 1, math.Inf(-1)),
		)

		DescribeTable("rejects a time column that is not strictly increasing",
			func(times []float64) {
				table := make([][]float64, len(times))
				for i, t := range times {
					table[i] = []float64{t, float64(i), float64(i)}
				}

				r, err := record.FromTable(consts, table)
				Expect(r).To(BeNil())
				Expect(err).To(MatchError(record.ErrInvalidValue))
				Expect(err).To(MatchError(record.ErrNonIncreasingTime))
				Expect(record.KindOf(err)).To(Equal(record.ValueKind))
			},
			Entry("repeated time", []float64{0, 1, 1, 2}),
			Entry("decreasing time", []float64{0, 2, 1, 3}),
			Entry("reversed", []float64{3, 2}),
		)

		It("reports type before shape and shape before values", func() {
			_, err := record.FromTable(consts, [][]float64{{math.NaN(), 1}})
			Expect(record.KindOf(err)).To(Equal(record.ShapeKind))

			_, err = record.FromTable(consts, [][]float64{{1, math.NaN(), 0}, {0, 0, 0}})
			Expect(err).To(MatchError(record.ErrNonFinite))
		})
	})
})

var _ = Describe("Constants", func() {
	It("derives w1 from B", func() {
		c, err := record.NewConstants(3, 2.5, 0.7)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.W1).To(Equal(2.5))
		Expect(c.Dim()).To(Equal(7))
		Expect(c.Hbar).To(Equal(record.Hbar))
		Expect(c.K).To(Equal(record.K))
	})

	DescribeTable("rejects out-of-range parameters",
		func(m int, b, mu float64) {
			_, err := record.NewConstants(m, b, mu)
			Expect(err).To(MatchError(record.ErrInvalidValue))
		},
		Entry("m zero", 0, 1.0, 1.0),
		Entry("negative B", 8, -1.0, 1.0),
		Entry("zero mu", 8, 1.0, 0.0),
		Entry("NaN B", 8, math.NaN(), 1.0),
		Entry("infinite mu", 8, 1.0, math.Inf(1)),
		Entry("negative m", -3, 1.0, 1.0),
		Entry("m past the basis cap", record.MaxM+1, 1.0, 1.0),
		Entry("m that overflows the basis size", 1<<62, 1.0, 1.0),
	)

	DescribeTable("rejects hand-built bundles before allocating",
		func(mutate func(*record.Constants)) {
			c := record.DefaultConstants()
			mutate(&c)

			r, err := record.FromTable(c, sampleTable())
			Expect(r).To(BeNil())
			Expect(err).To(MatchError(record.ErrInvalidValue))
			Expect(record.KindOf(err)).To(Equal(record.ValueKind))

			r, err = record.New(c)
			Expect(r).To(BeNil())
			Expect(err).To(MatchError(record.ErrInvalidValue))
		},
		Entry("zero value", func(c *record.Constants) { *c = record.Constants{} }),
		Entry("negative m", func(c *record.Constants) { c.M = -3 }),
		Entry("m that overflows the basis size", func(c *record.Constants) { c.M = 1 << 62 }),
		Entry("hbar changed", func(c *record.Constants) { c.Hbar = 2 }),
		Entry("K zero", func(c *record.Constants) { c.K = 0 }),
		Entry("w1 out of step with B", func(c *record.Constants) { c.B = 3 }),
		Entry("NaN mu", func(c *record.Constants) { c.Mu = math.NaN() }),
	)

	It("accepts a bundle from NewConstants", func() {
		c, err := record.NewConstants(record.MaxM, 2, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Validate()).To(Succeed())
		Expect(c.Dim()).To(Equal(2*record.MaxM + 1))
	})
})
