package counts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/sarchlab/neupim/counts"
)

var _ = Describe("Context", func() {
	var ctx *counts.Context

	BeforeEach(func() {
		ctx = counts.NewContext()
	})

	It("should count outstanding operations per class", func() {
		ctx.Add(counts.Load, 3)
		ctx.Add(counts.Store, 2)
		ctx.Add(counts.Compute, 1)

		Expect(ctx.Get(counts.Load)).To(Equal(uint32(3)))
		Expect(ctx.Get(counts.Store)).To(Equal(uint32(2)))
		Expect(ctx.Get(counts.Compute)).To(Equal(uint32(1)))
		Expect(ctx.GetTotal()).To(Equal(uint32(6)))
	})

	It("should refuse to reduce below zero", func() {
		ctx.Add(counts.Load, 2)

		Expect(ctx.Reduce(counts.Load, 3)).To(BeFalse())
		Expect(ctx.Get(counts.Load)).To(Equal(uint32(2)))

		Expect(ctx.Reduce(counts.Load, 2)).To(BeTrue())
		Expect(ctx.Get(counts.Load)).To(Equal(uint32(0)))
	})

	It("should refuse to reduce a fresh counter", func() {
		Expect(ctx.Reduce(counts.Store, 1)).To(BeFalse())
		Expect(ctx.Stores.Outstanding).To(Equal(uint32(0)))
	})

	It("should track lifetime counts independently of reduces", func() {
		ctx.Add(counts.Compute, 4)
		ctx.Reduce(counts.Compute, 4)
		ctx.Add(counts.Compute, 2)

		Expect(ctx.Computes.Lifetime).To(Equal(uint32(6)))
		Expect(ctx.Computes.Outstanding).To(Equal(uint32(2)))
	})

	It("should open an interval when a busy class is sampled", func() {
		ctx.Add(counts.Load, 5)
		ctx.UpdateOnCycle(10)

		Expect(ctx.Loads.IntervalStart).
			To(Equal(counts.MarkCycle(10)))
		Expect(ctx.Loads.AccumulatedBusyCycles).To(Equal(uint32(0)))
	})

	It("should close the interval when the class goes idle", func() {
		ctx.Add(counts.Load, 5)
		ctx.UpdateOnCycle(10)
		ctx.Reduce(counts.Load, 5)
		ctx.UpdateOnCycle(15)

		Expect(ctx.Loads.AccumulatedBusyCycles).To(Equal(uint32(5)))
		Expect(ctx.Loads.IntervalStart.Valid).To(BeFalse())
		Expect(ctx.Loads.IdleSince).To(Equal(counts.MarkCycle(15)))
	})

	It("should keep the interval open while the class stays busy", func() {
		ctx.Add(counts.Load, 2)
		ctx.UpdateOnCycle(1)
		ctx.Reduce(counts.Load, 1)
		ctx.UpdateOnCycle(2)
		ctx.UpdateOnCycle(3)

		Expect(ctx.Loads.IntervalStart).To(Equal(counts.MarkCycle(1)))
		Expect(ctx.Loads.AccumulatedBusyCycles).To(Equal(uint32(0)))
	})

	It("should not see toggles that happen between two samples", func() {
		ctx.Add(counts.Load, 1)
		ctx.UpdateOnCycle(1)

		ctx.Reduce(counts.Load, 1)
		ctx.Add(counts.Load, 1)
		ctx.UpdateOnCycle(2)

		Expect(ctx.Loads.IntervalStart).To(Equal(counts.MarkCycle(1)))
		Expect(ctx.Loads.AccumulatedBusyCycles).To(Equal(uint32(0)))
	})

	It("should not change on a repeated sample of the same cycle", func() {
		ctx.Add(counts.Load, 1)
		ctx.UpdateOnCycle(4)
		before := ctx.Loads

		ctx.UpdateOnCycle(4)

		Expect(ctx.Loads.IntervalStart).To(Equal(before.IntervalStart))
		Expect(ctx.Loads.AccumulatedBusyCycles).
			To(Equal(before.AccumulatedBusyCycles))
		Expect(ctx.Events).To(HaveLen(2))
	})

	It("should accumulate over multiple busy intervals", func() {
		ctx.Add(counts.Store, 1)
		ctx.UpdateOnCycle(10)
		ctx.Reduce(counts.Store, 1)
		ctx.UpdateOnCycle(13)

		ctx.Add(counts.Store, 1)
		ctx.UpdateOnCycle(20)
		ctx.Reduce(counts.Store, 1)
		ctx.UpdateOnCycle(27)

		Expect(ctx.Stores.AccumulatedBusyCycles).To(Equal(uint32(10)))
		Expect(ctx.Stores.BusyHisto).To(Equal(counts.DurationHisto{
			3: 1,
			7: 1,
		}))
	})

	It("should track idle spans between busy intervals", func() {
		ctx.Add(counts.Compute, 1)
		ctx.UpdateOnCycle(10)

		Expect(ctx.Computes.AccumulatedIdleCycles).To(Equal(uint32(10)))
		Expect(ctx.Computes.IdleHisto).To(Equal(counts.DurationHisto{
			10: 1,
		}))
	})

	It("should not histogram zero-length idle spans", func() {
		ctx.Add(counts.Compute, 1)
		ctx.UpdateOnCycle(0)

		Expect(ctx.Computes.IdleHisto).To(BeEmpty())
	})

	It("should sample the combined load-or-store class", func() {
		ctx.Add(counts.Store, 1)
		ctx.UpdateOnCycle(5)

		Expect(ctx.LoadOrStores.IntervalStart).
			To(Equal(counts.MarkCycle(5)))

		ctx.Reduce(counts.Store, 1)
		ctx.Add(counts.Load, 1)
		ctx.UpdateOnCycle(8)

		Expect(ctx.LoadOrStores.IntervalStart).
			To(Equal(counts.MarkCycle(5)))

		ctx.Reduce(counts.Load, 1)
		ctx.UpdateOnCycle(12)

		Expect(ctx.LoadOrStores.AccumulatedBusyCycles).
			To(Equal(uint32(7)))
	})

	It("should record events with the current stage", func() {
		ctx.UpdateStage(counts.StageB, 3)
		ctx.Add(counts.Load, 1)
		ctx.UpdateOnCycle(4)

		Expect(ctx.Events).To(HaveLen(3))
		Expect(ctx.Events[0].Kind).To(Equal(counts.StageStarted))
		Expect(ctx.Events[0].Class).To(Equal(counts.NoClass))
		Expect(ctx.Events[1]).To(Equal(counts.Event{
			Cycle: 4,
			Stage: counts.StageB,
			Kind:  counts.IntervalStarted,
			Class: counts.Load,
		}))
	})

	It("should record workload completion events", func() {
		ctx.NPUFinished(100)
		ctx.PIMFinished(110)
		ctx.EndStage(counts.StageA, 120)

		Expect(ctx.Events[0].Kind).To(Equal(counts.NPUFinishedEvent))
		Expect(ctx.Events[1].Kind).To(Equal(counts.PIMFinishedEvent))
		Expect(ctx.Events[2].Kind).To(Equal(counts.StageEnded))
	})
})

var _ = Describe("Context with tracers", func() {
	var (
		mockCtrl *gomock.Controller
		tracer   *MockTracer
		ctx      *counts.Context
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		tracer = NewMockTracer(mockCtrl)

		ctx = counts.NewContext()
		ctx.AcceptTracer(tracer)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should notify tracers of interval transitions", func() {
		tracer.EXPECT().StartInterval(counts.Interval{
			Class: counts.Load,
			Start: 10,
		})
		tracer.EXPECT().StartInterval(counts.Interval{
			Class: counts.LoadOrStore,
			Start: 10,
		})

		ctx.Add(counts.Load, 1)
		ctx.UpdateOnCycle(10)

		tracer.EXPECT().EndInterval(counts.Interval{
			Class: counts.Load,
			Start: 10,
			End:   15,
		})
		tracer.EXPECT().EndInterval(counts.Interval{
			Class: counts.LoadOrStore,
			Start: 10,
			End:   15,
		})

		ctx.Reduce(counts.Load, 1)
		ctx.UpdateOnCycle(15)
	})

	It("should not notify tracers while the state is unchanged", func() {
		ctx.UpdateOnCycle(1)
		ctx.UpdateOnCycle(2)
	})
})
