package vgnav

import (
	"net/url"
	"strings"
)

// RouteMatch is the result of resolving a path against a RouteTable.
type RouteMatch struct {
	ViewID  string // view registered for the matching route
	Pattern string // route pattern with params as :param
	Params  Params // path parameter values, nil if the pattern has none
}

// NormalizePath returns the canonical form of a request path.  The empty path
// becomes "/", repeated slashes collapse and any trailing slash other than the
// root is removed.  "." and ".." are ordinary segments, they are not resolved.
// Percent-escapes are left in place; they are decoded per segment during matching.
func NormalizePath(p string) string {
	return "/" + strings.Join(splitSegments(p), "/")
}

// splitSegments splits p on "/" dropping empty segments.
func splitSegments(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
}

// SplitPathQuery separates a path-and-query string (e.g. "/a/b?x=1#top") into
// its normalized path and its query values.  Any fragment is dropped.
// A malformed query keeps whatever values could be parsed.
func SplitPathQuery(pathEtc string) (string, url.Values) {

	if i := strings.IndexByte(pathEtc, '#'); i >= 0 {
		pathEtc = pathEtc[:i]
	}

	var q url.Values
	if i := strings.IndexByte(pathEtc, '?'); i >= 0 {
		q, _ = url.ParseQuery(pathEtc[i+1:])
		pathEtc = pathEtc[:i]
	}

	return NormalizePath(pathEtc), nilIfEmpty(q)
}

// Match resolves p against the routes of t in registration order and returns
// the first match.  The boolean is false when no route matches (not found).
// Match is a pure function of its inputs.
func Match(p string, t *RouteTable) (RouteMatch, bool) {
	if t == nil {
		return RouteMatch{}, false
	}
	return t.match(pathSegments(p))
}

// pathSegments normalizes p and splits it into decoded segments.
// Splitting happens before decoding so an escaped slash stays inside its segment.
func pathSegments(p string) []string {
	segs := splitSegments(p)
	for i := range segs {
		segs[i] = decodeSegment(segs[i])
	}
	return segs
}

// decodeSegment percent-decodes seg, returning it unchanged if it is not validly escaped.
func decodeSegment(seg string) string {
	if strings.IndexByte(seg, '%') < 0 {
		return seg
	}
	dec, err := url.PathUnescape(seg)
	if err != nil {
		return seg
	}
	return dec
}
