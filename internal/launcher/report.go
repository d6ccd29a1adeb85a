package launcher

import (
	"crypto/rand"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Report collects job outcomes for one run. Results are only appended.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time

	mu      sync.Mutex
	results []Job
}

func newReport(now time.Time) *Report {
	id := ulid.MustNew(ulid.Timestamp(now), rand.Reader)
	return &Report{RunID: id.String(), StartedAt: now}
}

func (r *Report) record(j Job) {
	r.mu.Lock()
	r.results = append(r.results, j)
	r.mu.Unlock()
}

// Results returns a copy of all recorded jobs in template order.
func (r *Report) Results() []Job {
	r.mu.Lock()
	out := make([]Job, len(r.results))
	copy(out, r.results)
	r.mu.Unlock()

	sort.Slice(out, func(a, b int) bool { return out[a].Index < out[b].Index })
	return out
}

// Positioned counts jobs that reached StatePositioned.
func (r *Report) Positioned() int {
	return r.count(StatePositioned)
}

// Failed counts jobs that reached StateFailed.
func (r *Report) Failed() int {
	return r.count(StateFailed)
}

// Total is the number of recorded jobs.
func (r *Report) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

func (r *Report) count(s State) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, j := range r.results {
		if j.State == s {
			n++
		}
	}
	return n
}
