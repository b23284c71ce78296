package vgnav

// Params holds the path parameter values extracted by a match, keyed by
// the parameter name declared in the route pattern (without the colon).
type Params map[string]string

// ByName returns the named parameter value or an empty string if not found.
func (ps Params) ByName(name string) string {
	return ps[name]
}

// clone returns an independent copy, nil stays nil.
func (ps Params) clone() Params {
	if ps == nil {
		return nil
	}
	ret := make(Params, len(ps))
	for k, v := range ps {
		ret[k] = v
	}
	return ret
}
