package metrics

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Metric is a single named value with optional labels.
type Metric struct {
	Name       string            `json:"name"`
	Value      float64           `json:"value"`
	Labels     map[string]string `json:"labels,omitempty"`
	LastUpdate time.Time         `json:"last_update"`
}

// TimerMetric aggregates duration samples for one named operation.
type TimerMetric struct {
	Count   int64   `json:"count"`
	Sum     float64 `json:"sum_ms"`
	Min     float64 `json:"min_ms"`
	Max     float64 `json:"max_ms"`
	Average float64 `json:"avg_ms"`
}

// Registry manages all metrics in memory.
type Registry struct {
	mu        sync.RWMutex
	counters  map[string]*Metric
	gauges    map[string]*Metric
	timers    map[string]*TimerMetric
	startTime time.Time
}

// NewRegistry creates a new metrics registry
func NewRegistry() *Registry {
	return &Registry{
		counters:  make(map[string]*Metric),
		gauges:    make(map[string]*Metric),
		timers:    make(map[string]*TimerMetric),
		startTime: time.Now(),
	}
}

var globalRegistry = NewRegistry()

// GetRegistry returns the global registry instance
func GetRegistry() *Registry {
	return globalRegistry
}

// IncrementCounter increments a counter metric by one
func (r *Registry) IncrementCounter(name string, labels map[string]string) {
	r.AddToCounter(name, 1, labels)
}

// AddToCounter adds a value to a counter metric
func (r *Registry) AddToCounter(name string, value float64, labels map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := metricKey(name, labels)
	if counter, ok := r.counters[key]; ok {
		counter.Value += value
		counter.LastUpdate = time.Now()
		return
	}
	r.counters[key] = &Metric{
		Name:       name,
		Value:      value,
		Labels:     copyLabels(labels),
		LastUpdate: time.Now(),
	}
}

// SetGauge sets a gauge metric to the given value
func (r *Registry) SetGauge(name string, value float64, labels map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := metricKey(name, labels)
	r.gauges[key] = &Metric{
		Name:       name,
		Value:      value,
		Labels:     copyLabels(labels),
		LastUpdate: time.Now(),
	}
}

// RecordTimer records a duration sample for the named operation
func (r *Registry) RecordTimer(name string, duration time.Duration) {
	ms := float64(duration.Milliseconds())

	r.mu.Lock()
	defer r.mu.Unlock()

	timer, ok := r.timers[name]
	if !ok {
		timer = &TimerMetric{Min: ms, Max: ms}
		r.timers[name] = timer
	}

	timer.Count++
	timer.Sum += ms
	if ms < timer.Min {
		timer.Min = ms
	}
	if ms > timer.Max {
		timer.Max = ms
	}
	timer.Average = timer.Sum / float64(timer.Count)
}

// Snapshot is a point-in-time view of all metrics for the /metrics endpoint.
type Snapshot struct {
	UptimeSeconds float64                 `json:"uptime_seconds"`
	Counters      map[string]*Metric      `json:"counters"`
	Gauges        map[string]*Metric      `json:"gauges"`
	Timers        map[string]*TimerMetric `json:"timers"`
}

// GetAll returns a copy of every metric in the registry
func (r *Registry) GetAll() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := Snapshot{
		UptimeSeconds: time.Since(r.startTime).Seconds(),
		Counters:      make(map[string]*Metric, len(r.counters)),
		Gauges:        make(map[string]*Metric, len(r.gauges)),
		Timers:        make(map[string]*TimerMetric, len(r.timers)),
	}
	for k, v := range r.counters {
		c := *v
		snap.Counters[k] = &c
	}
	for k, v := range r.gauges {
		g := *v
		snap.Gauges[k] = &g
	}
	for k, v := range r.timers {
		t := *v
		snap.Timers[k] = &t
	}
	return snap
}

// GetAllMetrics returns a snapshot of the global registry
func GetAllMetrics() Snapshot {
	return globalRegistry.GetAll()
}

// IncrementCounter increments a counter on the global registry
func IncrementCounter(name string, labels map[string]string) {
	globalRegistry.IncrementCounter(name, labels)
}

// RecordTimer records a duration sample on the global registry
func RecordTimer(name string, duration time.Duration) {
	globalRegistry.RecordTimer(name, duration)
}

func metricKey(name string, labels map[string]string) string {
	if len(labels) == 0 {
		return name
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(name)
	for _, k := range keys {
		sb.WriteString("{")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(labels[k])
		sb.WriteString("}")
	}
	return sb.String()
}

func copyLabels(labels map[string]string) map[string]string {
	if len(labels) == 0 {
		return nil
	}
	out := make(map[string]string, len(labels))
	for k, v := range labels {
		out[k] = v
	}
	return out
}
