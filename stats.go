package todoagent

import "sync"

// ExecutionStats holds the counters of one execution. Counters only go up.
//
// ExecutionStats is safe for concurrent use; hooks may read it while the loop runs.
type ExecutionStats struct {
	mu       sync.RWMutex
	counters map[string]int64
}

// NewExecutionStats creates an empty ExecutionStats.
func NewExecutionStats() *ExecutionStats {
	return &ExecutionStats{
		counters: make(map[string]int64),
	}
}

// IncrCounter increments a counter by delta, creating it if needed.
// Panics if delta is negative. KeyIterations is ignored; see incrIterations.
func (s *ExecutionStats) IncrCounter(key string, delta int64) {
	if delta < 0 {
		panic("todoagent: IncrCounter called with negative delta")
	}
	if key == KeyIterations {
		return
	}
	s.incr(key, delta)
}

func (s *ExecutionStats) incr(key string, delta int64) {
	s.mu.Lock()
	s.counters[key] += delta
	s.mu.Unlock()
}

// GetCounter returns the current value of a counter, or 0 if not set.
func (s *ExecutionStats) GetCounter(key string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[key]
}

// Counters returns a copy of all counters.
func (s *ExecutionStats) Counters() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int64, len(s.counters))
	for k, v := range s.counters {
		out[k] = v
	}
	return out
}

// GetIterations returns the number of iterations started.
func (s *ExecutionStats) GetIterations() int64 {
	return s.GetCounter(KeyIterations)
}

// GetToolCallCount returns the number of tool calls, including no-op actions.
func (s *ExecutionStats) GetToolCallCount() int64 {
	return s.GetCounter(KeyToolCalls)
}

// GetTotalTokens returns input plus output tokens across all model calls.
func (s *ExecutionStats) GetTotalTokens() int64 {
	return s.GetCounter(KeyInputTokens) + s.GetCounter(KeyOutputTokens)
}
