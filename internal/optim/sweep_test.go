package optim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/duncanam/particle-interactions-puzzle/internal/metrics"
	"github.com/duncanam/particle-interactions-puzzle/internal/optim"
	"github.com/duncanam/particle-interactions-puzzle/internal/vicsek"
)

var _ = Describe("NoiseSweep", func() {
	var params vicsek.Params

	BeforeEach(func() {
		params = vicsek.DefaultParams()
		params.NumParticles = 60
	})

	It("returns one point per grid value in ascending noise order", func() {
		s := optim.NewNoiseSweep(5)
		s.Estimator = metrics.StationaryEstimator{BurnInSteps: 50, WindowSteps: 50}

		points, err := s.Run(context.Background(), params)
		Expect(err).NotTo(HaveOccurred())
		Expect(points).To(HaveLen(5))

		for i, pt := range points {
			Expect(pt.Noise).To(BeNumerically(">=", s.Min))
			Expect(pt.Noise).To(BeNumerically("<=", s.Max+1e-12))
			Expect(pt.OrderParameter).To(BeNumerically(">=", 0))
			Expect(pt.OrderParameter).To(BeNumerically("<=", 1))
			Expect(pt.Susceptibility).To(BeNumerically(">=", 0))
			if i > 0 {
				Expect(pt.Noise).To(BeNumerically(">", points[i-1].Noise))
			}
		}
	})

	It("orders more strongly at the quiet end of the grid", func() {
		s := optim.NewNoiseSweep(2)
		s.Estimator = metrics.StationaryEstimator{BurnInSteps: 400, WindowSteps: 300}

		points, err := s.Run(context.Background(), params)
		Expect(err).NotTo(HaveOccurred())
		Expect(points[0].OrderParameter).To(BeNumerically(">", points[1].OrderParameter))
	})

	It("propagates construction errors from grid points", func() {
		params.Timestep = 0

		s := optim.NewNoiseSweep(3)
		s.Estimator = metrics.StationaryEstimator{BurnInSteps: 10, WindowSteps: 10}

		_, err := s.Run(context.Background(), params)
		Expect(err).To(MatchError(vicsek.ErrTimestep))
	})
})
