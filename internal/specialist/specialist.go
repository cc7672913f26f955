// Package specialist holds the leaf scoring strategies. Every specialist is
// stateless: it reads a pre-fetched SignalBundle and returns a score in
// [0,100] plus a directional call. Missing or malformed fields always
// degrade to a neutral (50) vote; a specialist never fails an analysis.
package specialist

import "signal-council/internal/domain"

// Strategy is the single capability a specialist exposes.
//
// Ids are stable across releases and are never reused for a different
// formula: the performance ledger attributes historical accuracy by id.
type Strategy interface {
	ID() string
	Evaluate(bundle domain.SignalBundle) (float64, domain.DirectionalCall)
}

type strategyFunc struct {
	id string
	fn func(domain.SignalBundle) (float64, domain.DirectionalCall)
}

func (s strategyFunc) ID() string { return s.id }

func (s strategyFunc) Evaluate(bundle domain.SignalBundle) (float64, domain.DirectionalCall) {
	return s.fn(bundle)
}

func newStrategy(id string, fn func(domain.SignalBundle) (float64, domain.DirectionalCall)) Strategy {
	return strategyFunc{id: id, fn: fn}
}

// Group is one director's fixed set of specialists.
type Group struct {
	ID          string
	Specialists []Strategy
}

// DefaultGroups returns the five specialist groups in canonical order.
func DefaultGroups() []Group {
	return []Group{
		{ID: "momentum", Specialists: momentumSpecialists()},
		{ID: "trend", Specialists: trendSpecialists()},
		{ID: "sentiment", Specialists: sentimentSpecialists()},
		{ID: "flow", Specialists: flowSpecialists()},
		{ID: "fundamentals", Specialists: fundamentalsSpecialists()},
	}
}

// Registry indexes every registered specialist by id.
type Registry struct {
	order []string
	byID  map[string]Strategy
}

func NewRegistry(groups []Group) *Registry {
	r := &Registry{byID: make(map[string]Strategy)}
	for _, g := range groups {
		for _, s := range g.Specialists {
			if _, exists := r.byID[s.ID()]; exists {
				continue
			}
			r.byID[s.ID()] = s
			r.order = append(r.order, s.ID())
		}
	}
	return r
}

func (r *Registry) Get(id string) (Strategy, bool) {
	s, ok := r.byID[id]
	return s, ok
}

func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Len() int { return len(r.order) }
