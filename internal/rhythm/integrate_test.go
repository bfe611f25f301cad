package rhythm_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/phasesync/internal/rhythm"
	"github.com/san-kum/phasesync/internal/ring"
	"github.com/san-kum/phasesync/internal/sim"
)

var _ = Describe("Integrate", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("three-unit ring without damping", func() {
		var result *sim.Result

		BeforeEach(func() {
			l, err := ring.Laplacian(3)
			Expect(err).NotTo(HaveOccurred())
			result, err = rhythm.Integrate(ctx, []float64{1, 0, -1}, l, []float64{0, 0, 0}, 0.1, 0.2)
			Expect(err).NotTo(HaveOccurred())
		})

		It("builds the inclusive time grid", func() {
			Expect(result.Trajectory.Times).To(Equal([]float64{0.0, 0.1, 0.2}))
		})

		It("keeps the initial condition as row 0", func() {
			Expect(result.Trajectory.Row(0)).To(Equal(sim.State{1, 0, -1}))
		})

		It("applies one Euler update per row", func() {
			// L·[1,0,-1] = [3,0,-3], so row 1 = [1,0,-1] + 0.1·[-3,0,3].
			row1 := result.Trajectory.Row(1)
			Expect(row1[0]).To(BeNumerically("~", 0.7, 1e-12))
			Expect(row1[1]).To(BeNumerically("~", 0.0, 1e-12))
			Expect(row1[2]).To(BeNumerically("~", -0.7, 1e-12))

			row2 := result.Trajectory.Row(2)
			Expect(row2[0]).To(BeNumerically("~", 0.49, 1e-12))
			Expect(row2[1]).To(BeNumerically("~", 0.0, 1e-12))
			Expect(row2[2]).To(BeNumerically("~", -0.49, 1e-12))
		})
	})

	It("keeps row 0 bit-identical to phi0", func() {
		phi0 := []float64{math.Pi / 3, -0.1 - 0.2, 1e-300, -2.718281828459045}
		l, _ := ring.Laplacian(4)
		result, err := rhythm.Integrate(ctx, phi0, l, []float64{0.1, 0.2, 0.3, 0.4}, 0.01, 1)
		Expect(err).NotTo(HaveOccurred())

		row0 := result.Trajectory.Row(0)
		for i := range phi0 {
			Expect(math.Float64bits(row0[i])).To(Equal(math.Float64bits(phi0[i])))
		}
	})

	DescribeTable("row count matches floor(T/dt)+1",
		func(dt, tMax float64, want int) {
			l, _ := ring.Laplacian(3)
			result, err := rhythm.Integrate(ctx, []float64{1, 2, 3}, l, []float64{0.5, 0.5, 0.5}, dt, tMax)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Trajectory.Len()).To(Equal(want))
			Expect(result.Trajectory.Times).To(HaveLen(want))
			Expect(result.StepsTaken).To(Equal(want - 1))
		},
		Entry("reference grid", 0.01, 12.0, 1201),
		Entry("short grid", 0.1, 0.2, 3),
		Entry("non-multiple horizon", 0.1, 0.25, 3),
		Entry("representation error", 0.1, 0.3, 4),
		Entry("zero horizon", 0.01, 0.0, 1),
	)

	It("does nothing without coupling or damping", func() {
		phi0 := []float64{0.4, -1.1, 2.0, 0.0, 3.1}
		zero := mat.NewDense(5, 5, nil)
		result, err := rhythm.Integrate(ctx, phi0, zero, make([]float64, 5), 0.05, 2)
		Expect(err).NotTo(HaveOccurred())

		for k := 0; k < result.Trajectory.Len(); k++ {
			Expect(result.Trajectory.Row(k)).To(Equal(sim.State(phi0)))
		}
	})

	It("matches the Euler closed form for a single damped unit", func() {
		l, err := ring.Laplacian(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(l.At(0, 0)).To(Equal(0.0))

		const (
			c    = 0.8
			dt   = 0.01
			phi0 = 1.7
		)
		result, err := rhythm.Integrate(ctx, []float64{phi0}, l, []float64{c}, dt, 5)
		Expect(err).NotTo(HaveOccurred())

		for k := 0; k < result.Trajectory.Len(); k++ {
			want := phi0 * math.Pow(1-c*dt, float64(k))
			Expect(result.Trajectory.Row(k)[0]).To(BeNumerically("~", want, 1e-12))
		}
	})

	It("is deterministic", func() {
		l, _ := ring.Laplacian(7)
		theta := []float64{0.2, 0.5, 0.9, 0.4, 0.7, 0.3, 0.6}
		phi0 := []float64{2.4, -0.9, 1.3, 0.2, -2.8, 3.0, -1.6}

		a, err := rhythm.Integrate(ctx, phi0, l, theta, 0.01, 12)
		Expect(err).NotTo(HaveOccurred())
		b, err := rhythm.Integrate(ctx, phi0, l, theta, 0.01, 12)
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Trajectory.Times).To(Equal(b.Trajectory.Times))
		Expect(a.Trajectory.Phases.RawMatrix().Data).To(Equal(b.Trajectory.Phases.RawMatrix().Data))
	})

	It("leaves its inputs untouched", func() {
		l, _ := ring.Laplacian(3)
		before := mat.DenseCopyOf(l)
		phi0 := []float64{1, 2, 3}
		theta := []float64{0.1, 0.2, 0.3}

		_, err := rhythm.Integrate(ctx, phi0, l, theta, 0.1, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(phi0).To(Equal([]float64{1, 2, 3}))
		Expect(theta).To(Equal([]float64{0.1, 0.2, 0.3}))
		Expect(mat.Equal(l, before)).To(BeTrue())
	})

	It("drives the damped reference ring towards zero", func() {
		l, _ := ring.Laplacian(7)
		theta := []float64{0.2, 0.5, 0.9, 0.4, 0.7, 0.3, 0.6}
		phi0 := []float64{2.4, -0.9, 1.3, 0.2, -2.8, 3.0, -1.6}

		result, err := rhythm.Integrate(ctx, phi0, l, theta, 0.01, 12)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Trajectory.Final().Norm()).To(BeNumerically("<", 0.1*sim.State(phi0).Norm()))
	})

	Describe("malformed input", func() {
		It("rejects theta of the wrong length", func() {
			l, _ := ring.Laplacian(3)
			_, err := rhythm.Integrate(ctx, []float64{1, 2, 3}, l, []float64{0.1, 0.2}, 0.1, 1)
			Expect(err).To(MatchError(sim.ErrDimensionMismatch))
			var pe *sim.ParamError
			Expect(err).To(BeAssignableToTypeOf(pe))
			Expect(err.(*sim.ParamError).Param).To(Equal("theta"))
		})

		It("rejects phi0 of the wrong length", func() {
			l, _ := ring.Laplacian(3)
			_, err := rhythm.Integrate(ctx, []float64{1, 2}, l, []float64{0.1, 0.2, 0.3}, 0.1, 1)
			Expect(err).To(MatchError(sim.ErrDimensionMismatch))
			Expect(err.(*sim.ParamError).Param).To(Equal("phi0"))
		})

		It("rejects a non-square coupling matrix", func() {
			l := mat.NewDense(3, 2, nil)
			_, err := rhythm.Integrate(ctx, []float64{1, 2, 3}, l, []float64{0, 0, 0}, 0.1, 1)
			Expect(err).To(MatchError(sim.ErrDimensionMismatch))
		})

		It("rejects a nil coupling matrix", func() {
			_, err := rhythm.Integrate(ctx, []float64{1}, nil, []float64{0}, 0.1, 1)
			Expect(err).To(MatchError(sim.ErrInvalidParameter))
		})

		It("rejects a typed nil coupling matrix", func() {
			var l *mat.Dense
			_, err := rhythm.Integrate(ctx, []float64{1}, l, []float64{0}, 0.1, 1)
			Expect(err).To(MatchError(sim.ErrInvalidParameter))
			Expect(err.(*sim.ParamError).Param).To(Equal("L"))
		})

		It("rejects an empty coupling matrix", func() {
			_, err := rhythm.Integrate(ctx, []float64{}, &mat.Dense{}, []float64{}, 0.1, 1)
			Expect(err).To(MatchError(sim.ErrInvalidParameter))
			Expect(err.(*sim.ParamError).Param).To(Equal("n"))
		})

		DescribeTable("rejects bad step parameters before touching dimensions",
			func(dt, tMax float64, param string) {
				l, _ := ring.Laplacian(3)
				_, err := rhythm.Integrate(ctx, []float64{1}, l, []float64{0}, dt, tMax)
				Expect(err).To(MatchError(sim.ErrInvalidParameter))
				Expect(err.(*sim.ParamError).Param).To(Equal(param))
			},
			Entry("zero dt", 0.0, 1.0, "dt"),
			Entry("negative dt", -0.01, 1.0, "dt"),
			Entry("negative horizon", 0.01, -1.0, "t_max"),
		)
	})
})
