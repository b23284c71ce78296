package vgnav

import (
	"errors"
	"net/url"
)

// ErrNoRoute is returned by Push when the current path did not match a route.
var ErrNoRoute = errors.New("no route for current path")

// BindParam is implemented by something that can be read and written as a URL param.
type BindParam interface {
	BindParamRead() []string
	BindParamWrite(v []string)
}

// StringParam implements BindParam on a string.
type StringParam string

// BindParamRead implements BindParam.
func (s *StringParam) BindParamRead() []string { return []string{string(*s)} }

// BindParamWrite implements BindParam.
func (s *StringParam) BindParamWrite(v []string) {
	if len(v) == 0 {
		*s = ""
		return
	}
	*s = StringParam(v[0])
}

// Bind adds param to the bound parameters under name, replacing any earlier
// bind of the same name.  If the current location has a path parameter or
// query value called name it is written to param right away.
//
// Every navigation that changes the state removes all bindings, an Observer
// should bind again for the view it is showing.
func (d *Dispatcher) Bind(name string, param BindParam) {

	d.mu.Lock()
	if d.bindings == nil {
		d.bindings = make(map[string]BindParam)
	}
	d.bindings[name] = param
	v, ok := d.state.values(name)
	d.mu.Unlock()

	if ok {
		param.BindParamWrite(v)
	}
}

// UnbindParams will remove any previous parameter bindings.
// Note that this happens implicitly on navigation.
func (d *Dispatcher) UnbindParams() {
	d.mu.Lock()
	d.bindings = nil
	d.mu.Unlock()
}

// Push reads the bound parameters and navigates to the current route with
// them put in the appropriate place: path parameters of the route pattern in
// the path, anything else in the query.  Unbound path parameters and query
// values are kept.  A bound path parameter without a value returns
// ErrMissingParam and nothing happens.
func (d *Dispatcher) Push(opts ...NavigatorOpt) error {

	d.mu.Lock()
	if !d.state.Found {
		d.mu.Unlock()
		return ErrNoRoute
	}
	mp := d.state.route
	params := d.state.Match.Params.clone()
	query := cloneValues(d.state.Query)
	bindings := make(map[string]BindParam, len(d.bindings))
	for k, b := range d.bindings {
		bindings[k] = b
	}
	d.mu.Unlock()

	for name, b := range bindings {
		vals := b.BindParamRead()

		if mp.hasParam(name) {
			if params == nil {
				params = make(Params, len(bindings))
			}
			params[name] = ""
			if len(vals) > 0 {
				params[name] = vals[0]
			}
			continue
		}

		if len(vals) == 0 {
			query.Del(name)
			continue
		}
		if query == nil {
			query = make(url.Values)
		}
		query[name] = append([]string(nil), vals...)
	}

	p, _, err := mp.merge(params)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		p = p + "?" + query.Encode()
	}

	return d.NavigateTo(p, opts...)
}

// values returns the path parameter or query values called name.
func (s NavigationState) values(name string) ([]string, bool) {
	if v, ok := s.Match.Params[name]; ok {
		return []string{v}, true
	}
	if v, ok := s.Query[name]; ok {
		return append([]string(nil), v...), true
	}
	return nil, false
}
