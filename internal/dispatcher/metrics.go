package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/listedit/internal/dispatcher/handler"
)

// ActionMetrics holds counters for one action.
type ActionMetrics struct {
	Name          string
	DispatchCount uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastStatus    handler.ResultStatus
}

// AverageDuration returns the mean dispatch time of the action.
func (am ActionMetrics) AverageDuration() time.Duration {
	if am.DispatchCount == 0 {
		return 0
	}
	return am.TotalDuration / time.Duration(am.DispatchCount)
}

// Metrics collects dispatch statistics.
type Metrics struct {
	mu      sync.Mutex
	actions map[string]*ActionMetrics
	total   uint64
	errors  uint64
	panics  uint64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{actions: make(map[string]*ActionMetrics)}
}

// RecordDispatch records a dispatch event.
func (m *Metrics) RecordDispatch(actionName string, d time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	am := m.actions[actionName]
	if am == nil {
		am = &ActionMetrics{Name: actionName}
		m.actions[actionName] = am
	}
	am.DispatchCount++
	am.TotalDuration += d
	am.MaxDuration = max(am.MaxDuration, d)
	am.LastStatus = status

	m.total++
	if status == handler.StatusError {
		am.ErrorCount++
		m.errors++
	}
}

// RecordPanic records a recovered panic. The dispatch itself is recorded
// separately as an error.
func (m *Metrics) RecordPanic(actionName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panics++
}

// Totals returns the number of dispatches, errors and recovered panics.
func (m *Metrics) Totals() (dispatches, errors, panics uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total, m.errors, m.panics
}

// ActionStats returns a copy of the metrics for one action.
func (m *Metrics) ActionStats(actionName string) (ActionMetrics, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	am, ok := m.actions[actionName]
	if !ok {
		return ActionMetrics{}, false
	}
	return *am, true
}

// TopActions returns the n most dispatched actions. Ties sort by name.
func (m *Metrics) TopActions(n int) []ActionMetrics {
	m.mu.Lock()
	out := make([]ActionMetrics, 0, len(m.actions))
	for _, am := range m.actions {
		out = append(out, *am)
	}
	m.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].DispatchCount != out[j].DispatchCount {
			return out[i].DispatchCount > out[j].DispatchCount
		}
		return out[i].Name < out[j].Name
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
