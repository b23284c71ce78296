package vgnav

import "net/url"

// NavigatorOpt is a marker interface to ensure that options to Navigator are passed intentionally.
type NavigatorOpt interface {
	IsNavigatorOpt()
}

type intNavigatorOpt int

// IsNavigatorOpt implements NavigatorOpt.
func (i intNavigatorOpt) IsNavigatorOpt() {}

var (
	// NavReplace will cause this navigation to replace the
	// current history entry rather than pushing to the stack.
	NavReplace NavigatorOpt = intNavigatorOpt(1)

	// NavSkipRender will cause this navigation to not request a re-render
	// from the EventEnv.  It can be used when a component
	// has already accounted for the render in some other way and
	// just wants to inform the Navigator of the current logical path and query.
	NavSkipRender NavigatorOpt = intNavigatorOpt(2)
)

type navOpts []NavigatorOpt

func (no navOpts) has(o NavigatorOpt) bool {
	for _, o2 := range no {
		if o == o2 {
			return true
		}
	}
	return false
}

// Navigator is implemented by Dispatcher.  Components that only need to
// trigger navigation should depend on this rather than the Dispatcher.
type Navigator interface {
	NavigateTo(pathEtc string, opts ...NavigatorOpt) error
}

// NavigatorRef can be embedded in a component to have a Navigator injected.
type NavigatorRef struct {
	Navigator // embed Navigator
}

// NavigatorSet implements NavigatorSetter.
func (h *NavigatorRef) NavigatorSet(o Navigator) {
	h.Navigator = o
}

// NavigatorSetter is implemented by things that accept a Navigator.
type NavigatorSetter interface {
	NavigatorSet(Navigator)
}

// QueryUpdater rewrites the query string of the current location
// without changing the path.
type QueryUpdater interface {
	UpdateQuery(query url.Values, opts ...NavigatorOpt) error
}
