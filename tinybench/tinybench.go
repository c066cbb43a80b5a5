// Package tinybench is a small statistical benchmark runner. It samples
// throughput of a function repeatedly, compares the samples against a
// reference implementation and against the previous run with a two-sided
// t-test, and persists results to a JSON history file.
package tinybench

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/codahale/tinystat"
)

const (
	defaultSamples  = 100
	defaultDuration = 10 * time.Millisecond
	defaultHistory  = "bench.json"
	confidence      = 99
)

// Result is the persisted outcome of one benchmark.
type Result struct {
	Name      string    `json:"name"`
	Samples   []float64 `json:"samples"`
	Timestamp int64     `json:"timestamp"`
}

// Option configures the runner.
type Option func(*B)

// WithHistory sets the JSON file used for run-over-run comparisons.
func WithHistory(filename string) Option {
	return func(b *B) { b.history = filename }
}

// WithFilter restricts execution to benchmarks whose name has the prefix.
func WithFilter(prefix string) Option {
	return func(b *B) { b.filter = prefix }
}

// WithSamples sets the number of samples collected per benchmark.
func WithSamples(n int) Option {
	return func(b *B) { b.samples = n }
}

// WithDuration sets how long each sample runs.
func WithDuration(d time.Duration) Option {
	return func(b *B) { b.duration = d }
}

// WithReference adds a comparison column against a reference function.
func WithReference() Option {
	return func(b *B) { b.showRef = true }
}

// B runs benchmarks and keeps the shared configuration.
type B struct {
	history  string
	filter   string
	samples  int
	duration time.Duration
	showRef  bool
}

// Run executes the benchmarks registered by fn.
func Run(fn func(*B), opts ...Option) {
	b := &B{
		history:  defaultHistory,
		samples:  defaultSamples,
		duration: defaultDuration,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.printHeader()
	fn(b)
}

// Run benchmarks fn under the given name. When a reference function is
// supplied and references are enabled, its throughput is sampled too and
// reported as a speedup column.
func (b *B) Run(name string, fn func(), ref ...func()) {
	if b.filter != "" && !strings.HasPrefix(name, b.filter) {
		return
	}

	ours, allocs := b.sample(fn)
	mean := tinystat.Summarize(ours).Mean

	previous := b.load()
	delta := "new"
	if prev, ok := previous[name]; ok {
		delta = compare(ours, prev.Samples)
	}

	vsRef := ""
	if b.showRef && len(ref) > 0 && ref[0] != nil {
		refSamples, _ := b.sample(ref[0])
		vsRef = compare(ours, refSamples)
	}

	b.printRow(name, mean, allocs, delta, vsRef)
	b.save(Result{Name: name, Samples: ours, Timestamp: time.Now().Unix()})
}

// sample measures fn repeatedly, returning ops/sec samples and the mean
// heap allocation per operation.
func (b *B) sample(fn func()) (samples []float64, allocsPerOp float64) {
	samples = make([]float64, 0, b.samples)
	var totalAllocs float64

	for i := 0; i < b.samples; i++ {
		runtime.GC()
		runtime.GC()

		var m1, m2 runtime.MemStats
		runtime.ReadMemStats(&m1)

		ops := 0
		start := time.Now()
		for time.Since(start) < b.duration {
			fn()
			ops++
		}
		elapsed := time.Since(start)
		runtime.ReadMemStats(&m2)

		samples = append(samples, float64(ops)/elapsed.Seconds())
		totalAllocs += float64(m2.HeapAlloc-m1.HeapAlloc) / float64(ops)
	}
	return samples, totalAllocs / float64(len(samples))
}

// compare reports the speedup of ours over other, flagging statistically
// significant differences.
func compare(ours, other []float64) string {
	if len(other) == 0 {
		return "new"
	}

	a := tinystat.Summarize(ours)
	b := tinystat.Summarize(other)
	if b.Mean == 0 {
		if a.Mean > 0 {
			return "inf"
		}
		return "~ 1.00x"
	}

	speedup := a.Mean / b.Mean
	diff := tinystat.Compare(a, b, confidence)
	switch {
	case !diff.Significant():
		return fmt.Sprintf("~ %.2fx (p=%.3f)", speedup, diff.PValue)
	case speedup > 1:
		return fmt.Sprintf("+ %.2fx (p=%.3f)", speedup, diff.PValue)
	default:
		return fmt.Sprintf("- %.2fx (p=%.3f)", speedup, diff.PValue)
	}
}

func (b *B) printHeader() {
	if b.showRef {
		fmt.Printf("%-24s %-12s %-12s %-12s %-18s %-18s\n", "name", "time/op", "ops/s", "allocs/op", "vs prev", "vs ref")
		return
	}
	fmt.Printf("%-24s %-12s %-12s %-12s %-18s\n", "name", "time/op", "ops/s", "allocs/op", "vs prev")
}

func (b *B) printRow(name string, opsPerSec, allocsPerOp float64, delta, vsRef string) {
	nsPerOp := 1e9 / opsPerSec
	if b.showRef {
		fmt.Printf("%-24s %-12s %-12s %-12s %-18s %-18s\n",
			name, formatTime(nsPerOp), formatOps(opsPerSec), formatAllocs(allocsPerOp), delta, vsRef)
		return
	}
	fmt.Printf("%-24s %-12s %-12s %-12s %-18s\n",
		name, formatTime(nsPerOp), formatOps(opsPerSec), formatAllocs(allocsPerOp), delta)
}

// load reads the history file; a missing or corrupt file starts fresh.
func (b *B) load() map[string]Result {
	data, err := os.ReadFile(b.history)
	if err != nil {
		return map[string]Result{}
	}
	var results map[string]Result
	if err := json.Unmarshal(data, &results); err != nil {
		return map[string]Result{}
	}
	return results
}

// save merges one result into the history file.
func (b *B) save(result Result) {
	results := b.load()
	results[result.Name] = result

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		fmt.Printf("marshal results: %v\n", err)
		return
	}
	if err := os.WriteFile(b.history, data, 0644); err != nil {
		fmt.Printf("write %s: %v\n", b.history, err)
	}
}

func formatTime(nsPerOp float64) string {
	if nsPerOp >= 1e6 {
		return fmt.Sprintf("%.1fms", nsPerOp/1e6)
	}
	return fmt.Sprintf("%.1fns", nsPerOp)
}

func formatOps(opsPerSec float64) string {
	switch {
	case opsPerSec >= 1e6:
		return fmt.Sprintf("%.1fM", opsPerSec/1e6)
	case opsPerSec >= 1e3:
		return fmt.Sprintf("%.1fK", opsPerSec/1e3)
	default:
		return fmt.Sprintf("%.0f", opsPerSec)
	}
}

func formatAllocs(allocsPerOp float64) string {
	if allocsPerOp >= 1000 {
		return fmt.Sprintf("%.1fK", allocsPerOp/1000)
	}
	return fmt.Sprintf("%.0f", allocsPerOp)
}
