package counts

// CountsFilePath is where SaveGlobalCountsToFile writes the snapshot.
const CountsFilePath = "counts.json"

// Global is the process-wide counter context behind the flat call surface
// below. Its state is directly inspectable, e.g. Global.Loads.Outstanding or
// Global.Loads.IntervalStart.
var Global = NewContext()

// AddLoads records n newly issued load operations.
func AddLoads(n uint32) { Global.Add(Load, n) }

// AddStores records n newly issued store operations.
func AddStores(n uint32) { Global.Add(Store, n) }

// AddComputes records n newly issued compute operations.
func AddComputes(n uint32) { Global.Add(Compute, n) }

// ReduceLoads records n retired load operations. It returns false when n
// exceeds the outstanding count.
func ReduceLoads(n uint32) bool { return Global.Reduce(Load, n) }

// ReduceStores records n retired store operations. It returns false when n
// exceeds the outstanding count.
func ReduceStores(n uint32) bool { return Global.Reduce(Store, n) }

// ReduceComputes records n retired compute operations. It returns false when
// n exceeds the outstanding count.
func ReduceComputes(n uint32) bool { return Global.Reduce(Compute, n) }

// GetLoads returns the outstanding load count.
func GetLoads() uint32 { return Global.Get(Load) }

// GetStores returns the outstanding store count.
func GetStores() uint32 { return Global.Get(Store) }

// GetComputes returns the outstanding compute count.
func GetComputes() uint32 { return Global.Get(Compute) }

// GetTotal returns the total outstanding count across all classes.
func GetTotal() uint32 { return Global.GetTotal() }

// UpdateGlobalOnCycle samples the global counters at the given cycle. The
// driver calls it once per simulated cycle.
func UpdateGlobalOnCycle(cycle uint32) { Global.UpdateOnCycle(cycle) }

// SaveGlobalCountsToFile writes the global counter snapshot to
// CountsFilePath.
func SaveGlobalCountsToFile() error { return Global.SaveToFile(CountsFilePath) }
