package ui

import (
	"github.com/brogergvhs/chapterdl/internal/pipeline"
)

// Sink renders pipeline events as progress bars and log lines. Events are
// delivered from a single goroutine, so the sink keeps no locks of its own.
type Sink struct {
	log   *Logger
	pm    *ProgressManager
	stats *Stats

	fetch    *ProgressHandle
	assemble *ProgressHandle
}

func NewSink(log *Logger, pm *ProgressManager, stats *Stats) *Sink {
	if stats == nil {
		stats = &Stats{}
	}
	return &Sink{log: log, pm: pm, stats: stats}
}

func (s *Sink) Stats() *Stats {
	return s.stats
}

func (s *Sink) Notify(e pipeline.Event) {
	switch e.Kind {
	case pipeline.KindState:
		s.onState(e)
	case pipeline.KindFetch:
		s.stats.AddPage(e.Size, e.Err == nil)
		if e.Err != nil {
			s.log.Debugf("%s: %v\n", e.Message, e.Err)
		}
		if s.fetch != nil {
			s.fetch.Update(e.Done, e.Total, s.stats.TotalBytes.Load())
		}
	case pipeline.KindAssemble:
		s.stats.DocumentPages.Add(1)
		if s.assemble == nil && s.pm != nil {
			s.assemble = s.pm.Register("Assembling", "pages")
		}
		if s.assemble != nil {
			s.assemble.Update(e.Done, e.Total, 0)
		}
	case pipeline.KindInfo:
		if e.Err != nil {
			s.log.Errorf("%s: %v\n", e.Message, e.Err)
			return
		}
		s.log.Infof("%s\n", e.Message)
	}
}

func (s *Sink) onState(e pipeline.Event) {
	switch e.State {
	case pipeline.Extracting:
		s.log.Infof("%s\n", e.Message)
	case pipeline.Fetching:
		s.log.Infof("%s\n", e.Message)
		if s.pm != nil {
			s.fetch = s.pm.Register("Downloading", "pages")
		}
	case pipeline.Collating:
		if s.fetch != nil {
			s.fetch.MarkDone()
		}
	case pipeline.Skipped:
		if e.Message != "" {
			s.log.Debugf("Document skipped: %s\n", e.Message)
		}
	case pipeline.Done:
		s.finish(false)
	case pipeline.Failed:
		s.finish(true)
		s.log.Debugf("Run failed: %s\n", e.Message)
	default:
		if e.Message != "" {
			s.log.Debugf("%s: %s\n", e.State, e.Message)
		}
	}
}

func (s *Sink) finish(failed bool) {
	for _, h := range []*ProgressHandle{s.fetch, s.assemble} {
		if h == nil {
			continue
		}
		if failed {
			h.Abort()
			continue
		}
		h.MarkDone()
	}
}
