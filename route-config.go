package vgnav

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// routeFile is the on-disk route configuration:
//
//	routes:
//	  - path: /poc/jobs/:id
//	    component: PocJobDetail
type routeFile struct {
	Routes []routeFileEntry `yaml:"routes"`
}

type routeFileEntry struct {
	Path      string `yaml:"path"`
	Component string `yaml:"component"`
}

// LoadRoutes reads a YAML route configuration and registers its routes in
// file order.  Unknown keys are rejected.  An empty document gives an empty table.
func LoadRoutes(r io.Reader) (*RouteTable, error) {

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f routeFile
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding routes: %w", err)
	}

	t := &RouteTable{}
	for i, e := range f.Routes {
		if err := t.Register(e.Path, e.Component); err != nil {
			return nil, fmt.Errorf("route %d: %w", i, err)
		}
	}

	return t, nil
}

// LoadRoutesFile is like LoadRoutes but reads the named file.
func LoadRoutesFile(name string) (*RouteTable, error) {

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := LoadRoutes(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return t, nil
}

// WriteRoutes writes defs in the format read by LoadRoutes.
func WriteRoutes(w io.Writer, defs []RouteDefinition) error {

	f := routeFile{Routes: make([]routeFileEntry, len(defs))}
	for i, d := range defs {
		f.Routes[i] = routeFileEntry{Path: d.Pattern, Component: d.ViewID}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return err
	}

	return enc.Close()
}
