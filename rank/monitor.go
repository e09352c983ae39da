package rank

import "github.com/docsift/docsift/core"

// SearchMonitor provides hooks to observe the ranking process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterAnalysis(analysis *core.QueryAnalysis)
	AfterQueryEmbedding(degraded bool)
	SectionSkipped(id core.ID, title string, reason string)
	SectionDiscarded(id core.ID, semanticScore float32)
	SectionScored(result *core.RankedResult)
	Finish(results []*core.RankedResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                          {}
func (n *noopMonitor) AfterAnalysis(_ *core.QueryAnalysis)     {}
func (n *noopMonitor) AfterQueryEmbedding(_ bool)              {}
func (n *noopMonitor) SectionSkipped(_ core.ID, _, _ string)   {}
func (n *noopMonitor) SectionDiscarded(_ core.ID, _ float32)   {}
func (n *noopMonitor) SectionScored(_ *core.RankedResult)      {}
func (n *noopMonitor) Finish(_ []*core.RankedResult)           {}
