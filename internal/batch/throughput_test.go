package batch_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/robometrics/internal/batch"
	"github.com/san-kum/robometrics/internal/export"
	"github.com/san-kum/robometrics/internal/trace"
)

// junctionRun has four robots; b and d start after the warm-up and reach a goal.
const junctionRun = `{
  "makespan": 56.7,
  "robots": {
    "a": {"mission": {"started_at": 5.0, "duration": 10}},
    "b": {"mission": {"started_at": 7.0, "finished_at": 20.0, "duration": 13}},
    "c": {"mission": {"started_at": 8.0, "duration": 40}},
    "d": {"route": {"started_at": 10.0, "finished_at": 30.0, "duration": 20}}
  },
  "goal_areas": {
    "north": {"history": {"a": 12.0, "b": 20.0}},
    "south": {"history": {"d": 30.0}}
  }
}`

var _ = Describe("Throughput", func() {
	It("is the reciprocal of the mean time per robot", func() {
		tp, err := batch.Throughput(50, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(tp).To(BeNumerically("~", 0.2, 1e-12))
	})

	It("is zero when nothing arrived", func() {
		tp, err := batch.Throughput(50, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(tp).To(BeZero())
	})

	It("rejects an empty window", func() {
		_, err := batch.Throughput(0, 3)
		Expect(err).To(MatchError(trace.ErrMalformedInput))
	})
})

var _ = Describe("RunThroughput", func() {
	var run *export.Run

	BeforeEach(func() {
		var err error
		run, err = export.Parse("qin-1.json", []byte(junctionRun))
		Expect(err).NotTo(HaveOccurred())
	})

	It("counts robots started after the warm-up that reached a goal", func() {
		tp, err := batch.RunThroughput(run, batch.DefaultWindow())
		Expect(err).NotTo(HaveOccurred())
		Expect(tp).To(BeNumerically("~", 2.0/50.0, 1e-12))
	})

	It("honours an explicit horizon", func() {
		tp, err := batch.RunThroughput(run, batch.ObservationWindow{Start: 6.7, Horizon: 8.7})
		Expect(err).NotTo(HaveOccurred())
		Expect(tp).To(BeNumerically("~", 1.0/2.0, 1e-12))
	})

	It("fails when the window is empty", func() {
		_, err := batch.RunThroughput(run, batch.ObservationWindow{Start: 60})
		Expect(err).To(MatchError(trace.ErrMalformedInput))
	})
})

var _ = Describe("Junction", func() {
	It("rejects a window that closes before it opens", func() {
		_, err := batch.Junction(context.Background(), nil, nil, batch.ObservationWindow{Start: 6.7, Horizon: 5}, batch.Options{})
		Expect(err).To(MatchError(trace.ErrMalformedInput))
	})

	It("aggregates throughput by input flow anchored at the origin", func() {
		dir := GinkgoT().TempDir()
		for _, name := range []string{"qin-1-seed-0.json", "qin-1-seed-1.json", "qin-2-seed-0.json"} {
			Expect(os.WriteFile(filepath.Join(dir, name), []byte(junctionRun), 0o644)).To(Succeed())
		}
		files, err := batch.Discover(dir, "qin-*.json")
		Expect(err).NotTo(HaveOccurred())

		g, err := batch.Junction(context.Background(), files, nil, batch.DefaultWindow(), batch.Options{Workers: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Keys(batch.MetricThroughput)).To(Equal([]float64{1, 2}))

		series := batch.FlowSeries(g)
		Expect(series).To(HaveLen(3))
		Expect(series[0]).To(Equal(batch.Point{X: 0, Y: 0}))
		Expect(series[1].X).To(Equal(1.0))
		Expect(series[1].Y).To(BeNumerically("~", 0.04, 1e-12))
	})
})

var _ = Describe("Circle", func() {
	const circleRun = `{
  "makespan": 9.0,
  "robots": {
    "r0": {
      "positions": [[0, 0], [3, 4]],
      "velocities": [[0, 0], [1, 0], [4, 0]],
      "mission": {"started_at": 0, "finished_at": 2, "duration": 2}
    }
  }
}`

	It("collects distance, smoothness and makespan per robot count", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "num-robots-1-seed-0.json"), []byte(circleRun), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "num-robots-1-seed-1.json"), []byte(circleRun), 0o644)).To(Succeed())

		files, err := batch.Discover(dir, "num-robots-*-seed-*.json")
		Expect(err).NotTo(HaveOccurred())

		g, err := batch.Circle(context.Background(), files, nil, batch.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Names()).To(Equal([]string{batch.MetricDistance, batch.MetricLDJ, batch.MetricMakespan}))
		Expect(g.Values(batch.MetricDistance, 1)).To(Equal([]float64{5, 5}))
		Expect(g.Values(batch.MetricMakespan, 1)).To(Equal([]float64{9, 9}))
		Expect(g.Values(batch.MetricLDJ, 1)).To(HaveLen(2))
		Expect(g.Values(batch.MetricLDJ, 1)[0]).To(BeNumerically("~", 0, 1e-12))
	})

	It("names the robot when its trajectory is unusable", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "num-robots-1-seed-0.json")
		Expect(os.WriteFile(path, []byte(`{"makespan": 1, "robots": {"idle": {"velocities": [[0, 0], [0, 0]]}}}`), 0o644)).To(Succeed())

		_, err := batch.Circle(context.Background(), []string{path}, nil, batch.Options{})
		Expect(err).To(MatchError(trace.ErrZeroMotion))
		Expect(err.Error()).To(ContainSubstring("robot idle"))
	})
})
