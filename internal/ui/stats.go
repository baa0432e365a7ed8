package ui

import "sync/atomic"

// Stats accumulates totals for the run summary. Safe for concurrent use.
type Stats struct {
	TotalPages    atomic.Int64
	FailedPages   atomic.Int64
	TotalBytes    atomic.Int64
	DocumentPages atomic.Int64
}

func (s *Stats) AddPage(size int64, ok bool) {
	if !ok {
		s.FailedPages.Add(1)
		return
	}

	s.TotalPages.Add(1)
	s.TotalBytes.Add(size)
}
