package counts_test

import (
	"encoding/json"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/neupim/counts"
)

var _ = Describe("Global counter surface", func() {
	BeforeEach(func() {
		counts.Global = counts.NewContext()
	})

	It("should run the load issue-retire scenario", func() {
		counts.AddLoads(5)
		counts.UpdateGlobalOnCycle(10)

		Expect(counts.Global.Loads.IntervalStart).
			To(Equal(counts.MarkCycle(10)))
		Expect(counts.Global.Loads.AccumulatedBusyCycles).
			To(Equal(uint32(0)))

		Expect(counts.ReduceLoads(5)).To(BeTrue())
		counts.UpdateGlobalOnCycle(15)

		Expect(counts.Global.Loads.AccumulatedBusyCycles).
			To(Equal(uint32(5)))
		Expect(counts.Global.Loads.IntervalStart.Valid).To(BeFalse())
	})

	It("should reject reduces on fresh counters", func() {
		Expect(counts.ReduceStores(1)).To(BeFalse())
		Expect(counts.Global.Stores.Outstanding).To(Equal(uint32(0)))
	})

	It("should sum the three classes", func() {
		counts.AddLoads(1)
		counts.AddStores(2)
		counts.AddComputes(3)

		Expect(counts.GetLoads()).To(Equal(uint32(1)))
		Expect(counts.GetStores()).To(Equal(uint32(2)))
		Expect(counts.GetComputes()).To(Equal(uint32(3)))
		Expect(counts.GetTotal()).To(Equal(uint32(6)))
	})

	It("should save a readable snapshot file", func() {
		counts.AddLoads(2)
		counts.UpdateGlobalOnCycle(3)
		counts.ReduceLoads(2)
		counts.UpdateGlobalOnCycle(9)

		path := filepath.Join(GinkgoT().TempDir(), "counts.json")
		Expect(counts.Global.SaveToFile(path)).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())

		var snapshot map[string]any
		Expect(json.Unmarshal(data, &snapshot)).To(Succeed())

		loads := snapshot["loads"].(map[string]any)
		Expect(loads["busy_cycles"]).To(BeNumerically("==", 6))
		Expect(loads["lifetime"]).To(BeNumerically("==", 2))
		Expect(snapshot["last_cycle"]).To(BeNumerically("==", 9))
	})
})
