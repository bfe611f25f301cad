package rhythm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/phasesync/internal/rhythm"
	"github.com/san-kum/phasesync/internal/ring"
	"github.com/san-kum/phasesync/internal/sim"
)

var _ = Describe("Model", func() {
	It("computes -(L·phi) - theta⊙phi", func() {
		l, _ := ring.Laplacian(4)
		m, err := rhythm.New(l, []float64{1, 0, 0.5, 0})
		Expect(err).NotTo(HaveOccurred())

		// L·[1,2,3,4] = [2-2-4, -1+4-3, -2+6-4, -1-3+8] = [-4, 0, 0, 4]
		rate := m.Derive(sim.State{1, 2, 3, 4}, 0)
		Expect(rate).To(Equal(sim.State{4 - 1, 0, -1.5, -4}))
	})

	It("has a zero rate on a synchronised undamped state", func() {
		l, _ := ring.Laplacian(6)
		m, _ := rhythm.New(l, make([]float64, 6))
		rate := m.Derive(sim.State{0.7, 0.7, 0.7, 0.7, 0.7, 0.7}, 0)
		for _, r := range rate {
			Expect(r).To(BeNumerically("~", 0, 1e-15))
		}
	})

	It("copies theta", func() {
		theta := []float64{0.1, 0.2}
		m, err := rhythm.New(mat.NewDense(2, 2, nil), theta)
		Expect(err).NotTo(HaveOccurred())
		theta[0] = 9

		Expect(m.Theta()).To(Equal([]float64{0.1, 0.2}))
		Expect(m.GetParams()).To(HaveKeyWithValue("theta_1", 0.1))
		Expect(m.Dim()).To(Equal(2))
	})
})
