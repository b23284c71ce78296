package vgnav

import (
	"errors"
	"fmt"
)

// ErrInvalidPattern is returned when a route definition cannot be registered.
var ErrInvalidPattern = errors.New("invalid route pattern")

// ErrUnknownView is returned when building a path for a view that has no route.
var ErrUnknownView = errors.New("unknown view")

// RouteDefinition associates a path pattern with the view rendered for it.
// Pattern segments starting with ":" are parameters, e.g. "/poc/jobs/:id".
type RouteDefinition struct {
	Pattern string
	ViewID  string
}

// RouteTable is an ordered list of routes.  Order is significant:
// when several routes match a path the first registered one wins.
// The zero value is an empty table ready to use.
type RouteTable struct {
	entries []routeEntry
}

type routeEntry struct {
	def   RouteDefinition
	mpath mpath
}

// NewRouteTable returns a table with defs registered in order.
func NewRouteTable(defs ...RouteDefinition) (*RouteTable, error) {
	t := &RouteTable{}
	for _, d := range defs {
		if err := t.Register(d.Pattern, d.ViewID); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MustRegister is like Register but panics upon error.
func (t *RouteTable) MustRegister(pattern, viewID string) {
	err := t.Register(pattern, viewID)
	if err != nil {
		panic(err)
	}
}

// Register appends a route to the table.  Overlapping or ambiguous patterns
// are accepted, they are resolved at match time by registration order.
func (t *RouteTable) Register(pattern, viewID string) error {

	if viewID == "" {
		return fmt.Errorf("%w: %q has no view", ErrInvalidPattern, pattern)
	}

	mp, err := parseMpath(pattern)
	if err != nil {
		return err
	}

	t.entries = append(t.entries, routeEntry{
		def:   RouteDefinition{Pattern: mp.String(), ViewID: viewID},
		mpath: mp,
	})

	return nil
}

// All returns a copy of the route definitions in registration order.
// Patterns are returned in normalized form.
func (t *RouteTable) All() []RouteDefinition {
	if t == nil {
		return nil
	}
	ret := make([]RouteDefinition, len(t.entries))
	for i := range t.entries {
		ret[i] = t.entries[i].def
	}
	return ret
}

// Len returns the number of registered routes.
func (t *RouteTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Lookup returns the first route registered for viewID.
func (t *RouteTable) Lookup(viewID string) (RouteDefinition, bool) {
	if e := t.lookup(viewID); e != nil {
		return e.def, true
	}
	return RouteDefinition{}, false
}

// Path builds the path of the first route registered for viewID, filling in
// its parameters from params.  Params that are not part of the pattern are
// appended as the query string.  A missing parameter value returns
// ErrMissingParam along with the path using "_" in its place.
func (t *RouteTable) Path(viewID string, params Params) (string, error) {

	e := t.lookup(viewID)
	if e == nil {
		return "", fmt.Errorf("%w %q", ErrUnknownView, viewID)
	}

	p, other, err := e.mpath.merge(params)
	if len(other) > 0 {
		p = p + "?" + other.Encode()
	}
	return p, err
}

func (t *RouteTable) lookup(viewID string) *routeEntry {
	if t == nil {
		return nil
	}
	for i := range t.entries {
		if t.entries[i].def.ViewID == viewID {
			return &t.entries[i]
		}
	}
	return nil
}

// clone returns a copy that is unaffected by later registrations on t.
func (t *RouteTable) clone() *RouteTable {
	ret := &RouteTable{}
	if t != nil {
		ret.entries = append([]routeEntry(nil), t.entries...)
	}
	return ret
}

func (t *RouteTable) match(segs []string) (RouteMatch, bool) {
	m, _, ok := t.matchEntry(segs)
	return m, ok
}

// matchEntry is like match but also returns the parsed pattern of the matching route.
func (t *RouteTable) matchEntry(segs []string) (RouteMatch, mpath, bool) {
	for _, e := range t.entries {
		params, ok := e.mpath.match(segs)
		if !ok {
			continue
		}
		return RouteMatch{
			ViewID:  e.def.ViewID,
			Pattern: e.def.Pattern,
			Params:  params,
		}, e.mpath, true
	}
	return RouteMatch{}, nil, false
}
