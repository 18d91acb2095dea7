// Package monitoring turns a running simulation into a small HTTP server so
// the live counter state can be inspected from outside the process.
package monitoring

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"

	"github.com/sarchlab/neupim/counts"
	"github.com/sarchlab/neupim/icnt"
	"github.com/sarchlab/neupim/settings"
)

// Monitor serves the state of registered instrumentation components over
// HTTP. Handlers read live state; they are meant to be queried while the
// driver is paused or finished, matching the single-threaded contract of the
// counters.
type Monitor struct {
	ctx        *counts.Context
	networks   []*icnt.NoConflictNetwork
	portNumber int
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor. Ports below 1000 are
// rejected and replaced with a random port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterContext registers the counter context to be served.
func (m *Monitor) RegisterContext(ctx *counts.Context) {
	m.ctx = ctx
}

// RegisterNetwork registers a no-conflict interconnect to be served.
func (m *Monitor) RegisterNetwork(n *icnt.NoConflictNetwork) {
	m.networks = append(m.networks, n)
}

// StartServer starts serving on the configured port, or a random port when
// none is set, and returns the port actually used.
func (m *Monitor) StartServer() int {
	r := mux.NewRouter()

	r.HandleFunc("/api/counts", m.serveCounts)
	r.HandleFunc("/api/settings", m.serveSettings)
	r.HandleFunc("/api/icnt", m.serveNetworks)
	r.HandleFunc("/api/resources", m.serveResources)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	port := listener.Addr().(*net.TCPAddr).Port
	fmt.Fprintf(os.Stderr,
		"Monitoring simulation with http://localhost:%d\n", port)

	go func() {
		err := http.Serve(listener, r)
		dieOnErr(err)
	}()

	return port
}

func (m *Monitor) serveCounts(w http.ResponseWriter, _ *http.Request) {
	if m.ctx == nil {
		http.Error(w, "no counter context registered",
			http.StatusNotFound)
		return
	}

	writeJSON(w, m.ctx.Snapshot())
}

func (m *Monitor) serveSettings(w http.ResponseWriter, _ *http.Request) {
	s := settings.Get()
	if s == nil {
		http.Error(w, "settings not initialized", http.StatusNotFound)
		return
	}

	writeJSON(w, s)
}

type networkRsp struct {
	TotalPackages int `json:"total_packages"`
}

func (m *Monitor) serveNetworks(w http.ResponseWriter, _ *http.Request) {
	rsp := make([]networkRsp, 0, len(m.networks))
	for _, n := range m.networks {
		rsp = append(rsp, networkRsp{TotalPackages: n.TotalPackages()})
	}

	writeJSON(w, rsp)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) serveResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memoryInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	bytes, err := json.Marshal(v)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		panic(err)
	}
}
