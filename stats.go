package tsppd

import (
	"sync/atomic"
	"time"
)

// CutStats collects per-family cut counts and separation times. The callback
// is invoked concurrently from the engine's worker threads, so all updates go
// through sync/atomic; counters only ever grow between resets.
type CutStats struct {
	feasibilityCuts    int64
	subtourCuts        int64
	generalOrderCuts   int64
	capacityCuts       int64
	forkCuts           int64
	simplifiedForkCuts int64

	feasibilityNanos    int64
	subtourNanos        int64
	generalOrderNanos   int64
	capacityNanos       int64
	forkNanos           int64
	simplifiedForkNanos int64
}

func NewCutStats() *CutStats {
	return &CutStats{}
}

func (s *CutStats) counter(family string) *int64 {
	switch family {
	case CUT_FEASIBILITY:
		return &s.feasibilityCuts
	case CUT_SUBTOUR:
		return &s.subtourCuts
	case CUT_GENERAL_ORDER:
		return &s.generalOrderCuts
	case CUT_CAPACITY:
		return &s.capacityCuts
	case CUT_FORK:
		return &s.forkCuts
	case CUT_SIMPLIFIED_FORK:
		return &s.simplifiedForkCuts
	}
	return nil
}

func (s *CutStats) timer(family string) *int64 {
	switch family {
	case CUT_FEASIBILITY:
		return &s.feasibilityNanos
	case CUT_SUBTOUR:
		return &s.subtourNanos
	case CUT_GENERAL_ORDER:
		return &s.generalOrderNanos
	case CUT_CAPACITY:
		return &s.capacityNanos
	case CUT_FORK:
		return &s.forkNanos
	case CUT_SIMPLIFIED_FORK:
		return &s.simplifiedForkNanos
	}
	return nil
}

func (s *CutStats) AddCuts(family string, n int) {
	if c := s.counter(family); c != nil && n > 0 {
		atomic.AddInt64(c, int64(n))
	}
}

func (s *CutStats) AddTime(family string, d time.Duration) {
	if t := s.timer(family); t != nil && d > 0 {
		atomic.AddInt64(t, d.Nanoseconds())
	}
}

func (s *CutStats) Cuts(family string) int64 {
	if c := s.counter(family); c != nil {
		return atomic.LoadInt64(c)
	}
	return 0
}

func (s *CutStats) Seconds(family string) float64 {
	if t := s.timer(family); t != nil {
		return time.Duration(atomic.LoadInt64(t)).Seconds()
	}
	return 0
}

// Reset zeroes all buckets; called once at solve start.
func (s *CutStats) Reset() {
	for _, f := range []string{CUT_FEASIBILITY, CUT_SUBTOUR, CUT_GENERAL_ORDER, CUT_CAPACITY, CUT_FORK, CUT_SIMPLIFIED_FORK} {
		atomic.StoreInt64(s.counter(f), 0)
		atomic.StoreInt64(s.timer(f), 0)
	}
}

func (s *CutStats) Report() CutReport {
	return CutReport{
		FeasibilityCuts:    s.Cuts(CUT_FEASIBILITY),
		SubtourCuts:        s.Cuts(CUT_SUBTOUR),
		GeneralOrderCuts:   s.Cuts(CUT_GENERAL_ORDER),
		CapacityCuts:       s.Cuts(CUT_CAPACITY),
		ForkCuts:           s.Cuts(CUT_FORK),
		SimplifiedForkCuts: s.Cuts(CUT_SIMPLIFIED_FORK),

		FeasibilitySeconds:    s.Seconds(CUT_FEASIBILITY),
		SubtourSeconds:        s.Seconds(CUT_SUBTOUR),
		GeneralOrderSeconds:   s.Seconds(CUT_GENERAL_ORDER),
		CapacitySeconds:       s.Seconds(CUT_CAPACITY),
		ForkSeconds:           s.Seconds(CUT_FORK),
		SimplifiedForkSeconds: s.Seconds(CUT_SIMPLIFIED_FORK),
	}
}
