package batch_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/robometrics/internal/batch"
	"github.com/san-kum/robometrics/internal/trace"
)

var _ = Describe("KeyPattern", func() {
	DescribeTable("circle filenames",
		func(path string, want int) {
			n, err := batch.CirclePattern.Int(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(want))
		},
		Entry("bare", "num-robots-10-seed-3.json", 10),
		Entry("with directory", filepath.Join("out", "circle", "num-robots-25-seed-0.json"), 25),
	)

	It("exposes the seed", func() {
		groups, err := batch.CirclePattern.Match("num-robots-5-seed-42.json")
		Expect(err).NotTo(HaveOccurred())
		Expect(groups).To(Equal([]string{"5", "42"}))
	})

	DescribeTable("junction filenames",
		func(path string, want float64) {
			q, err := batch.JunctionPattern.Float(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(q).To(Equal(want))
		},
		Entry("suffixed", "qin-2.5-seed-1.json", 2.5),
		Entry("plain", "qin-0.5.json", 0.5),
		Entry("integer", "qin-3-run.json", 3.0),
	)

	DescribeTable("mismatches",
		func(p *batch.KeyPattern, path string) {
			_, err := p.Float(path)
			Expect(err).To(MatchError(trace.ErrPatternMismatch))
		},
		Entry("circle typo", batch.CirclePattern, "num-robot-10-seed-3.json"),
		Entry("circle extension", batch.CirclePattern, "num-robots-10-seed-3.yaml"),
		Entry("junction non numeric", batch.JunctionPattern, "qin-fast.json"),
		Entry("junction prefix", batch.JunctionPattern, "qout-1.json"),
	)

	It("rejects a pattern without a capture group", func() {
		_, err := batch.NewKeyPattern(`^run\.json$`)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Discover", func() {
	It("lists matching files in name order", func() {
		dir := GinkgoT().TempDir()
		for _, name := range []string{"qin-2.json", "qin-1.json", "notes.txt"} {
			Expect(os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644)).To(Succeed())
		}

		files, err := batch.Discover(dir, "qin-*.json")
		Expect(err).NotTo(HaveOccurred())
		Expect(files).To(Equal([]string{filepath.Join(dir, "qin-1.json"), filepath.Join(dir, "qin-2.json")}))
	})
})
