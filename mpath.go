package vgnav

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// parseMpath will split the route pattern p into its segments.
// After parsing each element of mpath will either be a literal
// (already percent-decoded) or a parameter starting with ":".
// The root pattern "/" parses to an empty mpath.
func parseMpath(p string) (mpath, error) {

	p = NormalizePath(p)
	parts := splitSegments(p)
	if len(parts) == 0 {
		return mpath{}, nil
	}

	ret := make(mpath, 0, len(parts))
	var seen map[string]bool

	for _, part := range parts {

		if !isParam(part) {
			ret = append(ret, decodeSegment(part))
			continue
		}

		name := part[1:]
		if name == "" {
			return nil, fmt.Errorf("%w: %q has a parameter without a name", ErrInvalidPattern, p)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %q repeats parameter %q", ErrInvalidPattern, p, name)
		}
		if seen == nil {
			seen = make(map[string]bool, 2)
		}
		seen[name] = true
		ret = append(ret, part)
	}

	return ret, nil
}

// mpath is a matchable-path.  It's a route pattern split into segments.
type mpath []string

func isParam(seg string) bool {
	return strings.HasPrefix(seg, ":")
}

// String returns the re-assembled path pattern
func (mp mpath) String() string {
	if len(mp) == 0 {
		return "/"
	}
	return "/" + strings.Join(mp, "/")
}

// ErrMissingParam is returned when building a path for a route whose
// parameter has no value.
var ErrMissingParam = errors.New("missing param")

// merge will use any values provided for the appropriate path params
// and return the constructed path.  A missing param value will cause
// ErrMissingParam to be returned but will still return the path with
// the missing param(s) replaced with "_".  The otherValues will
// be populated with all values not merged into the output path.
func (mp mpath) merge(v Params) (outPath string, otherValues url.Values, reterr error) {

	if len(v) > 0 {
		otherValues = make(url.Values, len(v))
		for k, val := range v {
			otherValues.Set(k, val)
		}
	}

	if len(mp) == 0 {
		return "/", nilIfEmpty(otherValues), nil
	}

	var buf strings.Builder
	buf.Grow(64)

	for _, p := range mp {
		buf.WriteByte('/')
		if isParam(p) {
			pname := p[1:]
			pval := v[pname]
			if pval == "" {
				reterr = fmt.Errorf("%w %q", ErrMissingParam, pname)
				buf.WriteString("_")
				continue
			}
			buf.WriteString(url.PathEscape(pval))
			otherValues.Del(pname)
			continue
		}
		buf.WriteString(url.PathEscape(p))
	}

	return buf.String(), nilIfEmpty(otherValues), reterr
}

// match compares our mpath to the decoded path segments and returns the
// parameter values plus ok true if every segment matched.  There is no
// prefix matching, the segment counts must be equal.
func (mp mpath) match(segs []string) (params Params, ok bool) {

	if len(segs) != len(mp) {
		return nil, false
	}

	for i, mpart := range mp {

		if isParam(mpart) {
			if segs[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(Params, 2)
			}
			params[mpart[1:]] = segs[i]
			continue
		}

		if mpart != segs[i] {
			return nil, false
		}
	}

	return params, true
}

func nilIfEmpty(v url.Values) url.Values {
	if len(v) == 0 {
		return nil
	}
	return v
}

// hasParam reports whether the pattern has a parameter called name.
func (mp mpath) hasParam(name string) bool {
	for _, p := range mp {
		if isParam(p) && p[1:] == name {
			return true
		}
	}
	return false
}
