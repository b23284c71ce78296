package rgen

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"unicode"

	"github.com/vugu/vgnav"
)

// OutputFileName is the name of the generated Go file.
const OutputFileName = "0_routes_vgen.go"

// New returns a new Generator instance.
func New() *Generator {
	return &Generator{}
}

// Generator derives routes from the layout of a pages directory: every
// included file becomes a route whose path follows its location, so
// "poc/jobs/[id].vugu" is served at "/poc/jobs/:id".
type Generator struct {
	dir         string                            // starting directory
	recursive   bool                              // if true we will descend into directories
	packageName string                            // Go package name of the generated file
	pathFunc    func(fileName string) string      // function to derive a path segment from a file name
	includeFunc func(path, fileName string) bool  // function to determine if a file should be included
	viewFunc    func(dir, fileName string) string // function to name the view of a file
	logger      *slog.Logger
}

// SetDir assigns the directory to start generating in.
func (g *Generator) SetDir(dir string) *Generator {
	g.dir = dir
	return g
}

// SetRecursive if passed true will enable the generator recursing
// into sub-directories.
func (g *Generator) SetRecursive(recursive bool) *Generator {
	g.recursive = recursive
	return g
}

// SetPackageName sets the package name used in the generated Go file.
// If not set the base name of the directory is used.
func (g *Generator) SetPackageName(packageName string) *Generator {
	g.packageName = packageName
	return g
}

// SetPathFunc sets the function which turns a file name into the last path segment
// of its route; an empty result means the directory path itself.
// If not set, DefaultPathFunc will be used.
func (g *Generator) SetPathFunc(f func(fileName string) string) *Generator {
	g.pathFunc = f
	return g
}

// SetIncludeFunc sets the function which determines which files are included in the route map.
// The include function will be passed the path relative to the dir set by SetDir (and will be empty
// for files in that directory) and fileName will contain the base file name.  E.g. given SetDir("/a")
// "/a/b.vugu" will result in a call with ("", "b.vugu"), and "/a/b/c.vugu" will result in a call
// with ("b", "c.vugu"), "/a/b/c/d.vugu" with ("b/c", "d.vugu") and so on.
func (g *Generator) SetIncludeFunc(f func(path, fileName string) bool) *Generator {
	g.includeFunc = f
	return g
}

// SetViewNameFunc sets the function which names the view of an included file.
// It is passed the same arguments as the include function.
// If not set, DefaultViewNameFunc will be used.
func (g *Generator) SetViewNameFunc(f func(dir, fileName string) string) *Generator {
	g.viewFunc = f
	return g
}

// SetLogger sets the logger used to report discovered routes.
func (g *Generator) SetLogger(l *slog.Logger) *Generator {
	g.logger = l
	return g
}

// DefaultPathFunc will return the fileName with any suffix removed.
// The special case of index.vugu returns "" (the directory itself) and a name
// in brackets is a parameter, e.g. "[id].vugu" returns ":id".
func DefaultPathFunc(fileName string) string {
	name := strings.TrimSuffix(fileName, path.Ext(fileName))
	if name == "index" {
		return ""
	}
	return segmentName(name)
}

// DefaultIncludeFunc will return true for any file which ends with .vugu.
func DefaultIncludeFunc(path, fileName string) bool {
	return strings.HasSuffix(fileName, ".vugu")
}

// segmentName turns a directory or file base name into a pattern segment.
func segmentName(s string) string {
	if len(s) > 2 && strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return ":" + s[1:len(s)-1]
	}
	return s
}

// Routes scans the directory and returns the routes in match priority order:
// at the first differing segment literals come before parameters, otherwise
// paths sort by name with shorter paths first.
func (g *Generator) Routes() ([]vgnav.RouteDefinition, error) {

	// to keep our sanity we need to guarantee that g.dir is absolute
	dir, err := filepath.Abs(g.dir)
	if err != nil {
		return nil, err
	}
	g.dir = dir

	df, err := g.readDirf(g.dir)
	if err != nil {
		return nil, err
	}

	var ret []vgnav.RouteDefinition
	seen := make(map[string]string)
	err = g.collect(df, &ret, seen)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(ret, func(i, j int) bool {
		return lessPattern(ret[i].Pattern, ret[j].Pattern)
	})

	return ret, nil
}

// Generate does the route generation, writing OutputFileName into the directory.
func (g *Generator) Generate() error {

	routes, err := g.Routes()
	if err != nil {
		return err
	}

	localPackage := g.packageName
	if localPackage == "" {
		localPackage = packageIdent(filepath.Base(g.dir))
	}

	var buf bytes.Buffer
	err = routesTemplate.Execute(&buf, map[string]interface{}{
		"LocalPackage": localPackage,
		"Routes":       routes,
	})
	if err != nil {
		return err
	}

	b, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("error formatting generated routes: %w; full output:\n%s", err, buf.Bytes())
	}

	fullRouteMapPath := filepath.Join(g.dir, OutputFileName)

	err = os.WriteFile(fullRouteMapPath, b, 0644)
	if err != nil {
		return err
	}

	g.log().Info("routes written", "file", fullRouteMapPath, "count", len(routes))

	return nil
}

// WriteYAML scans the directory and writes the routes as a route configuration
// file readable by vgnav.LoadRoutes.
func (g *Generator) WriteYAML(w io.Writer) error {
	routes, err := g.Routes()
	if err != nil {
		return err
	}
	return vgnav.WriteRoutes(w, routes)
}

func (g *Generator) log() *slog.Logger {
	if g.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return g.logger
}

func (g *Generator) readDirf(dirPath string) (*dirf, error) {

	includeFunc := g.includeFunc
	if includeFunc == nil {
		includeFunc = DefaultIncludeFunc
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(g.dir, dirPath)
	if err != nil {
		return nil, fmt.Errorf("relative path conversion failed: %w", err)
	}
	rel = strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(rel)), "/")

	ret := &dirf{
		path: rel,
	}

	for _, fi := range entries {

		if fi.IsDir() {
			if !g.recursive {
				continue
			}
			subdirf, err := g.readDirf(filepath.Join(dirPath, fi.Name()))
			if err != nil {
				return nil, err
			}
			ret.subdirs = append(ret.subdirs, subdirf)
			continue
		}

		if includeFunc(rel, fi.Name()) {
			ret.fileNames = append(ret.fileNames, fi.Name())
		}
	}

	return ret, nil

}

type dirf struct {
	path      string   // path relative to g.dir
	fileNames []string // list of included files
	subdirs   []*dirf  // children
}

func (g *Generator) collect(df *dirf, out *[]vgnav.RouteDefinition, seen map[string]string) error {

	pf := g.pathFunc
	if pf == nil {
		pf = DefaultPathFunc
	}
	vf := g.viewFunc
	if vf == nil {
		vf = DefaultViewNameFunc
	}

	var dirSegs []string
	if df.path != "" {
		for _, d := range strings.Split(df.path, "/") {
			dirSegs = append(dirSegs, segmentName(d))
		}
	}

	for _, fn := range df.fileNames {

		segs := append([]string(nil), dirSegs...)
		if s := pf(fn); s != "" {
			segs = append(segs, s)
		}
		pattern := vgnav.NormalizePath(strings.Join(segs, "/"))

		src := path.Join(df.path, fn)
		if prev, ok := seen[pattern]; ok {
			return fmt.Errorf("%s and %s both map to %q", prev, src, pattern)
		}
		seen[pattern] = src

		def := vgnav.RouteDefinition{Pattern: pattern, ViewID: vf(df.path, fn)}
		g.log().Debug("route", "pattern", def.Pattern, "view", def.ViewID, "file", src)
		*out = append(*out, def)
	}

	for _, sub := range df.subdirs {
		err := g.collect(sub, out, seen)
		if err != nil {
			return fmt.Errorf("error collecting routes for %q: %w", sub.path, err)
		}
	}

	return nil
}

// DefaultViewNameFunc builds the view identifier for a file: its directory
// names and file name converted the way vugu names component types, so
// "poc/jobs/index.vugu" is PocJobs and "poc/jobs/[id].vugu" is PocJobsById.
// The top level index file is Index.
func DefaultViewNameFunc(dir, fileName string) string {

	var parts []string
	if dir != "" {
		parts = strings.Split(dir, "/")
	}

	base := strings.Split(fileName, ".")[0]
	if base != "index" || len(parts) == 0 {
		parts = append(parts, base)
	}

	var sb strings.Builder
	for _, p := range parts {
		if strings.HasPrefix(p, "[") && strings.HasSuffix(p, "]") {
			sb.WriteString("By")
			p = strings.Trim(p, "[]")
		}
		sb.WriteString(fnameToGoTypeName(p))
	}
	return sb.String()
}

func fnameToGoTypeName(s string) string {
	s = strings.Split(s, ".")[0] // remove file extension if present
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' })
	for i := range parts {
		p := parts[i]
		if len(p) > 0 {
			p = strings.ToUpper(p[:1]) + p[1:]
		}
		parts[i] = p
	}
	return strings.Join(parts, "")
}

// lessPattern orders route patterns so that first-match-wins prefers literals.
func lessPattern(a, b string) bool {
	as := strings.Split(strings.TrimPrefix(a, "/"), "/")
	bs := strings.Split(strings.TrimPrefix(b, "/"), "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		ap, bp := strings.HasPrefix(as[i], ":"), strings.HasPrefix(bs[i], ":")
		if ap != bp {
			return !ap
		}
		return as[i] < bs[i]
	}
	return len(as) < len(bs)
}

// packageIdent makes a valid Go package name out of a directory name.
func packageIdent(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			sb.WriteRune(r)
		}
	}
	ret := sb.String()
	if ret == "" || unicode.IsDigit(rune(ret[0])) {
		ret = "pages" + ret
	}
	return ret
}

var routesTemplate = template.Must(template.New(OutputFileName).Parse(`package {{.LocalPackage}}

// WARNING: This file was generated by vgnav/rgen. Do not modify.

import "github.com/vugu/vgnav"

// vgRouteList is the generated route list for this directory,
// in match priority order.
var vgRouteList = []vgnav.RouteDefinition{
{{range .Routes}}	{Pattern: {{printf "%q" .Pattern}}, ViewID: {{printf "%q" .ViewID}}},
{{end}}}

// Routes returns the generated route definitions.
func Routes() []vgnav.RouteDefinition {
	return append([]vgnav.RouteDefinition(nil), vgRouteList...)
}

// MakeRouteTable returns a RouteTable with the generated routes registered.
func MakeRouteTable() *vgnav.RouteTable {
	t, err := vgnav.NewRouteTable(vgRouteList...)
	if err != nil {
		panic(err)
	}
	return t
}
`))
