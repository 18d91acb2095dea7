package main

import (
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/neupim/counts"
	"github.com/sarchlab/neupim/icnt"
	"github.com/sarchlab/neupim/monitoring"
	"github.com/sarchlab/neupim/record"
	"github.com/sarchlab/neupim/settings"
)

var (
	demoCycles      uint32
	demoSeed        int64
	demoMonitorPort int
	demoDBPath      string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a synthetic workload through the instrumentation components.",
	RunE:  runDemo,
}

func init() {
	demoCmd.Flags().Uint32Var(&demoCycles, "cycles", 1000,
		"number of cycles to simulate")
	demoCmd.Flags().Int64Var(&demoSeed, "seed", 1,
		"random seed of the synthetic workload")
	demoCmd.Flags().IntVar(&demoMonitorPort, "monitor-port", 0,
		"start the monitoring server on this port (0 disables)")
	demoCmd.Flags().StringVar(&demoDBPath, "db", "",
		"recording database name (default picks a unique name)")

	rootCmd.AddCommand(demoCmd)
}

func runDemo(_ *cobra.Command, _ []string) error {
	if err := initSettings(); err != nil {
		return err
	}

	recorder := record.NewRecorder(demoDBPath)
	record.SnapshotTables(recorder)
	counts.Global.AcceptTracer(record.NewIntervalTracer(recorder))

	network := icnt.New()

	if demoMonitorPort != 0 {
		monitor := monitoring.NewMonitor().
			WithPortNumber(demoMonitorPort)
		monitor.RegisterContext(counts.Global)
		monitor.RegisterNetwork(network)
		monitor.StartServer()
	}

	driveWorkload(network)

	record.RecordSnapshot(recorder, counts.Global, demoCycles)
	recorder.Flush()
	network.Release()

	if err := counts.SaveGlobalCountsToFile(); err != nil {
		return err
	}

	atexit.Exit(0)

	return nil
}

func initSettings() error {
	if settingsPath != "" {
		return settings.InitWithFile(settingsPath)
	}

	return settings.Init()
}

// driveWorkload issues and retires pseudo-random operation batches, one
// UpdateGlobalOnCycle call per cycle, the way the real simulation driver
// does.
func driveWorkload(network *icnt.NoConflictNetwork) {
	rng := rand.New(rand.NewSource(demoSeed))
	fastIcnt := settings.Get().FastIcnt

	stages := []counts.RunStage{
		counts.StageA, counts.StageB, counts.StageC,
		counts.StageD, counts.StageE, counts.StageF,
	}
	stageLen := demoCycles/uint32(len(stages)) + 1

	for cycle := uint32(0); cycle < demoCycles; cycle++ {
		if cycle%stageLen == 0 {
			stage := stages[cycle/stageLen]
			if cycle > 0 {
				counts.Global.EndStage(counts.Global.Stage, cycle)
			}
			counts.Global.UpdateStage(stage, cycle)
		}

		issueBatch(rng)
		retireBatch(rng)

		if fastIcnt {
			for i := 0; i < rng.Intn(4); i++ {
				src := uint32(rng.Intn(16))
				dst := uint32(rng.Intn(16))
				network.Push(src, dst, nil)
			}
		}

		counts.UpdateGlobalOnCycle(cycle)
	}

	drain(demoCycles)

	counts.Global.NPUFinished(demoCycles)
	counts.Global.PIMFinished(demoCycles)
	counts.Global.UpdateStage(counts.StageFinished, demoCycles)

	logrus.Infof("Demo finished: %d loads, %d stores, %d computes issued",
		counts.Global.Loads.Lifetime,
		counts.Global.Stores.Lifetime,
		counts.Global.Computes.Lifetime)
}

func issueBatch(rng *rand.Rand) {
	if rng.Intn(4) == 0 {
		counts.AddLoads(uint32(rng.Intn(4) + 1))
	}
	if rng.Intn(4) == 0 {
		counts.AddStores(uint32(rng.Intn(4) + 1))
	}
	if rng.Intn(3) == 0 {
		counts.AddComputes(uint32(rng.Intn(2) + 1))
	}
}

func retireBatch(rng *rand.Rand) {
	if n := counts.GetLoads(); n > 0 {
		counts.ReduceLoads(uint32(rng.Intn(int(n) + 1)))
	}
	if n := counts.GetStores(); n > 0 {
		counts.ReduceStores(uint32(rng.Intn(int(n) + 1)))
	}
	if n := counts.GetComputes(); n > 0 {
		counts.ReduceComputes(uint32(rng.Intn(int(n) + 1)))
	}
}

// drain retires everything still outstanding and closes the open intervals
// with one final tick.
func drain(cycle uint32) {
	counts.ReduceLoads(counts.GetLoads())
	counts.ReduceStores(counts.GetStores())
	counts.ReduceComputes(counts.GetComputes())
	counts.UpdateGlobalOnCycle(cycle)
}
