package search

import "github.com/calder-systems/fieldcraft/core"

// Monitor provides hooks to observe the matching process.
// Implement this interface to trace how a query scored against the catalog.
type Monitor interface {
	Start(query string)
	AfterNormalize(tokens []string)
	TitleHit(card core.Card, token string)
	TagHit(card core.Card, token string)
	FuzzyHit(card core.Card, token string)
	BodyHit(card core.Card, token string)
	Finish(results []core.MatchResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                     {}
func (n *noopMonitor) AfterNormalize(_ []string)          {}
func (n *noopMonitor) TitleHit(_ core.Card, _ string)     {}
func (n *noopMonitor) TagHit(_ core.Card, _ string)       {}
func (n *noopMonitor) FuzzyHit(_ core.Card, _ string)     {}
func (n *noopMonitor) BodyHit(_ core.Card, _ string)      {}
func (n *noopMonitor) Finish(_ []core.MatchResult)        {}
