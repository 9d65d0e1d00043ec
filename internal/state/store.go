package state

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/five82/modsnap/internal/compare"
)

// Result represents the latest comparison available to the UI.
type Result struct {
	Diff                compare.Diff
	HasDiff             bool
	ReferenceUsable     bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the host has been unreachable for multiple polls.
func (r Result) IsOffline() bool {
	return r.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the result.
type Store struct {
	mu     sync.RWMutex
	result Result
}

// SetReferenceUsable records whether the reference snapshot held prior data.
func (s *Store) SetReferenceUsable(usable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result.ReferenceUsable = usable
}

// Update replaces the stored diff. When err is non-nil the previous diff is
// kept but the error is recorded for visibility.
func (s *Store) Update(diff *compare.Diff, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.result.LastError = err
		s.result.LastUpdated = time.Now()
		s.result.ConsecutiveFailures++
		return
	}

	if diff != nil {
		s.result.Diff = cloneDiff(*diff)
		s.result.HasDiff = true
	} else {
		s.result.Diff = compare.Diff{}
		s.result.HasDiff = false
	}
	s.result.LastError = nil
	s.result.LastUpdated = time.Now()
	s.result.ConsecutiveFailures = 0
}

// Result returns a copy of the current result.
func (s *Store) Result() Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := s.result
	res.Diff = cloneDiff(s.result.Diff)
	if s.result.LastError != nil {
		res.LastError = fmt.Errorf("%w", s.result.LastError)
	}
	return res
}

func cloneDiff(d compare.Diff) compare.Diff {
	out := d
	out.MissingMods = slices.Clone(d.MissingMods)
	out.UpdatedMods = slices.Clone(d.UpdatedMods)
	if d.MissingRegistryEntries != nil {
		out.MissingRegistryEntries = make(map[string][]string, len(d.MissingRegistryEntries))
		for name, entries := range d.MissingRegistryEntries {
			out.MissingRegistryEntries[name] = slices.Clone(entries)
		}
	}
	return out
}
