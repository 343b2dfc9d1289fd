package optim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/duncanam/particle-interactions-puzzle/internal/metrics"
	"github.com/duncanam/particle-interactions-puzzle/internal/optim"
	"github.com/duncanam/particle-interactions-puzzle/internal/vicsek"
)

// Short horizons keep the suite fast; the estimates are noisier but the
// bisection is built to tolerate that.
var testEstimator = metrics.StationaryEstimator{BurnInSteps: 300, WindowSteps: 200}

var _ = Describe("CriticalNoise", func() {
	var params vicsek.Params

	BeforeEach(func() {
		params = vicsek.DefaultParams()
		params.NumParticles = 60
	})

	It("finds a transition strictly inside (0, 1)", func() {
		c := optim.NewCriticalNoise()
		c.Estimator = testEstimator

		res, err := c.Find(context.Background(), params)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Converged).To(BeTrue())
		Expect(res.Noise).To(BeNumerically(">", 0))
		Expect(res.Noise).To(BeNumerically("<", 1))
		Expect(len(res.Probes)).To(BeNumerically("<=", c.MaxProbes))
	})

	It("reports best effort when the probe budget runs out", func() {
		c := optim.NewCriticalNoise()
		c.Estimator = metrics.StationaryEstimator{BurnInSteps: 50, WindowSteps: 50}
		c.MaxProbes = 2
		c.Tolerance = 1e-9

		res, err := c.Find(context.Background(), params)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Converged).To(BeFalse())
		Expect(res.Probes).To(HaveLen(2))
		Expect(res.Noise).To(BeNumerically(">", 0))
		Expect(res.Noise).To(BeNumerically("<", 1))
	})

	It("stops when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := optim.NewCriticalNoise()
		c.Estimator = testEstimator

		_, err := c.Find(ctx, params)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("surfaces invalid base parameters", func() {
		params.NumParticles = 0

		c := optim.NewCriticalNoise()
		c.Estimator = testEstimator

		_, err := c.Find(context.Background(), params)
		Expect(err).To(MatchError(vicsek.ErrParticleCount))
	})
})
