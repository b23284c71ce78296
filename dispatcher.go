package vgnav

import (
	"fmt"
	"log/slog"
	"net/url"
	"sync"
)

// EventEnv is our view of a Vugu EventEnv
type EventEnv interface {
	Lock()         // acquire write lock
	UnlockOnly()   // release write lock
	UnlockRender() // release write lock and request re-render
}

// NavigationState is the outcome of the most recent navigation.
// When Found is false no route matched Path and Match is empty;
// it is up to the rendering layer to show a not found view.
type NavigationState struct {
	Path  string     // normalized path
	Query url.Values // query values, nil if none
	Match RouteMatch // matched route, empty if not found
	Found bool       // false means not found

	route mpath // parsed pattern of Match, nil if not found
}

// ViewID returns the matched view or an empty string if not found.
func (s NavigationState) ViewID() string { return s.Match.ViewID }

// Params returns the path parameters of the matched route.
func (s NavigationState) Params() Params { return s.Match.Params }

// NotFound reports whether no route matched.
func (s NavigationState) NotFound() bool { return !s.Found }

// URL returns the path followed by the encoded query, if any.
func (s NavigationState) URL() string {
	if len(s.Query) == 0 {
		return s.Path
	}
	return s.Path + "?" + s.Query.Encode()
}

func (s NavigationState) clone() NavigationState {
	s.Query = cloneValues(s.Query)
	s.Match.Params = s.Match.Params.clone()
	return s
}

// Observer implementations are called after each navigation with the new state.
type Observer interface {
	Navigated(s NavigationState)
}

// ObserverFunc implements Observer as a function.
type ObserverFunc func(s NavigationState)

// Navigated implements the Observer interface.
func (f ObserverFunc) Navigated(s NavigationState) { f(s) }

// HistoryError reports that the History could not record a navigation.
// The navigation state has still been updated when this is returned.
type HistoryError struct {
	Op   string // "push" or "replace"
	Path string
	Err  error
}

func (e *HistoryError) Error() string {
	return fmt.Sprintf("history %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *HistoryError) Unwrap() error { return e.Err }

// Option configures a Dispatcher.
type Option func(d *Dispatcher)

// WithLogger sets the logger.  By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithEventEnv makes state changes happen under the EventEnv lock and
// requests a re-render after each one.
func WithEventEnv(env EventEnv) Option {
	return func(d *Dispatcher) {
		d.eventEnv = env
	}
}

// Dispatcher owns the NavigationState.  It resolves paths against its
// RouteTable, keeps the History in sync and notifies observers.
//
// Navigations are processed one at a time in the order requested.  A
// navigation requested while another is being processed (e.g. from an
// Observer) is queued and runs once the current one has completed.
type Dispatcher struct {
	table    *RouteTable
	history  History
	eventEnv EventEnv
	logger   *slog.Logger

	mu          sync.Mutex
	state       NavigationState
	dispatching bool
	queue       []navRequest

	bindings map[string]BindParam

	observers  subscriptions[Observer]
	unlisten   func()
	unlistenMu sync.Once
}

type navRequest struct {
	path     string
	query    url.Values
	keepPath bool // use the current path, only the query changes
	external bool // the history already moved, don't push or replace
	opts     navOpts
}

// New returns a Dispatcher for table.  The table is copied, routes
// registered on it afterwards are not seen.  The initial state is resolved
// from the current path of h and the Dispatcher starts listening to h for
// back/forward changes.  If h is nil a MemoryHistory starting at "/" is used.
func New(table *RouteTable, h History, opts ...Option) *Dispatcher {

	if h == nil {
		h = NewMemoryHistory("/")
	}

	d := &Dispatcher{
		table:   table.clone(),
		history: h,
		logger:  slog.New(slog.DiscardHandler),
	}

	for _, o := range opts {
		o(d)
	}

	p, q := SplitPathQuery(h.CurrentPath())
	d.state = d.resolve(p, q)
	d.logger.Debug("initial route resolved", "path", d.state.Path, "view", d.state.ViewID(), "found", d.state.Found)

	d.unlisten = h.OnChange(d.HandleExternalChange)

	return d
}

// MustNavigateTo is like NavigateTo but panics upon error.
func (d *Dispatcher) MustNavigateTo(pathEtc string, opts ...NavigatorOpt) {
	err := d.NavigateTo(pathEtc, opts...)
	if err != nil {
		panic(err)
	}
}

// NavigateTo goes to the specified path and query (e.g. "/poc/jobs?page=2").
// The path is resolved, the state updated, the History pushed (or replaced
// with NavReplace) and observers notified, in that order.  An empty path
// means "/".  Navigating to the current path and query does nothing.
//
// A non-nil error is always a *HistoryError, the state has been updated regardless.
// A call made while another navigation is in progress (from an Observer or
// another goroutine) is queued and returns nil right away.  The queued
// navigation runs before the in-progress call returns and any History failure
// it hits is only logged.
func (d *Dispatcher) NavigateTo(pathEtc string, opts ...NavigatorOpt) error {
	p, q := SplitPathQuery(pathEtc)
	return d.dispatch(navRequest{path: p, query: q, opts: opts})
}

// NavigateToView navigates to the path of the first route registered for viewID.
// Params not used by the route pattern become query values.
func (d *Dispatcher) NavigateToView(viewID string, params Params, opts ...NavigatorOpt) error {
	p, err := d.table.Path(viewID, params)
	if err != nil {
		return err
	}
	return d.NavigateTo(p, opts...)
}

// UpdateQuery replaces the query of the current location, keeping the path.
func (d *Dispatcher) UpdateQuery(query url.Values, opts ...NavigatorOpt) error {
	return d.dispatch(navRequest{query: nilIfEmpty(cloneValues(query)), keepPath: true, opts: opts})
}

// HandleExternalChange resolves a path the History moved to on its own
// (back/forward) and notifies observers.  The History is not touched.
func (d *Dispatcher) HandleExternalChange(pathEtc string) {
	p, q := SplitPathQuery(pathEtc)
	// external requests never fail, there is no history call to report
	_ = d.dispatch(navRequest{path: p, query: q, external: true})
}

// Pull will read the current History path and navigate to it as an external change.
func (d *Dispatcher) Pull() {
	d.HandleExternalChange(d.history.CurrentPath())
}

// CurrentState returns a copy of the current navigation state.
func (d *Dispatcher) CurrentState() NavigationState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.clone()
}

// Routes returns the route definitions used by d.
func (d *Dispatcher) Routes() []RouteDefinition {
	return d.table.All()
}

// Subscribe registers o to be called after every navigation.
// The returned function removes it and may be called more than once.
func (d *Dispatcher) Subscribe(o Observer) (unsubscribe func()) {
	return d.observers.add(o)
}

// Inject gives v this Dispatcher if it implements NavigatorSetter.
func (d *Dispatcher) Inject(v interface{}) {
	if ns, ok := v.(NavigatorSetter); ok {
		ns.NavigatorSet(d)
	}
}

// Close stops listening to the History.
func (d *Dispatcher) Close() {
	d.unlistenMu.Do(func() {
		if d.unlisten != nil {
			d.unlisten()
		}
	})
}

// dispatch runs req, or queues it if another request is being processed.
// Queued requests are drained by the caller that was already dispatching.
func (d *Dispatcher) dispatch(req navRequest) error {

	d.mu.Lock()
	if d.dispatching {
		d.queue = append(d.queue, req)
		d.mu.Unlock()
		d.logger.Debug("navigation queued", "path", req.path)
		return nil
	}
	d.dispatching = true
	d.mu.Unlock()

	// an observer panic must not leave the dispatcher busy forever
	done := false
	defer func() {
		if done {
			return
		}
		d.mu.Lock()
		dropped := len(d.queue)
		d.queue = nil
		d.dispatching = false
		d.mu.Unlock()
		d.logger.Error("navigation aborted by panic", "dropped", dropped)
	}()

	err := d.run(req)

	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			d.dispatching = false
			d.mu.Unlock()
			done = true
			break
		}
		next := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()

		if qerr := d.run(next); qerr != nil {
			d.logger.Warn("queued navigation failed", "path", next.path, "error", qerr)
		}
	}

	return err
}

// run performs a single navigation: resolve, update state, update history, notify.
func (d *Dispatcher) run(req navRequest) error {

	d.mu.Lock()
	if req.keepPath {
		req.path = d.state.Path
	}
	unchanged := req.path == d.state.Path && equalValues(req.query, d.state.Query)
	d.mu.Unlock()

	// the table cannot change, same path and query means same state
	if unchanged {
		d.logger.Debug("navigation to current location ignored", "path", req.path)
		return nil
	}

	next := d.resolve(req.path, req.query)

	if d.eventEnv != nil {
		d.eventEnv.Lock()
	}
	d.mu.Lock()
	d.state = next
	d.bindings = nil
	d.mu.Unlock()
	if d.eventEnv != nil {
		if req.opts.has(NavSkipRender) {
			d.eventEnv.UnlockOnly()
		} else {
			d.eventEnv.UnlockRender()
		}
	}

	d.logger.Debug("navigated",
		"path", next.Path,
		"view", next.ViewID(),
		"found", next.Found,
		"external", req.external)

	var err error
	if !req.external {
		err = d.record(next.URL(), req.opts.has(NavReplace))
	}

	for _, o := range d.observers.snapshot() {
		o.Navigated(next.clone())
	}

	return err
}

func (d *Dispatcher) record(pathEtc string, replace bool) error {

	op, f := "push", d.history.Push
	if replace {
		op, f = "replace", d.history.Replace
	}

	if err := f(pathEtc); err != nil {
		d.logger.Warn("history update failed", "op", op, "path", pathEtc, "error", err)
		return &HistoryError{Op: op, Path: pathEtc, Err: err}
	}

	return nil
}

func (d *Dispatcher) resolve(p string, q url.Values) NavigationState {
	m, mp, ok := d.table.matchEntry(pathSegments(p))
	return NavigationState{Path: p, Query: q, Match: m, Found: ok, route: mp}
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return nil
	}
	ret := make(url.Values, len(v))
	for k, vals := range v {
		ret[k] = append([]string(nil), vals...)
	}
	return ret
}

func equalValues(a, b url.Values) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
	}
	return true
}
