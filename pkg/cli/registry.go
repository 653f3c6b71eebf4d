package cli

import (
	"context"
	"fmt"
	"strings"
)

type Handler func(ctx context.Context, inv *Invocation) error

// Invocation carries the resolved call for one dispatched command.
type Invocation struct {
	Path []string
	Args map[string]string
}

func (inv *Invocation) Arg(name string) string {
	return inv.Args[name]
}

func (inv *Invocation) Has(name string) bool {
	_, ok := inv.Args[name]
	return ok
}

// Param declares one handler parameter, in call order. Values holds
// author-supplied completion suggestions, surfaced verbatim and in order.
type Param struct {
	Name     string
	Optional bool
	Values   []string
}

type Record struct {
	Path    []string
	Help    string
	Handler Handler
	Params  []*Param
	Source  string
}

// Param returns the declared parameter with the given name, or nil.
func (r *Record) Param(name string) *Param {
	for _, p := range r.Params {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Registry accumulates command records in registration order. It is the
// flat store the command tree is built from; mutation stops once a tree
// has been built.
type Registry struct {
	records []*Record
	byPath  map[string]*Record
}

func NewRegistry() *Registry {
	return &Registry{
		byPath: make(map[string]*Record),
	}
}

func (r *Registry) Register(path string, help string, h Handler, params ...*Param) error {
	segments, err := splitPath(path)
	if err != nil {
		return err
	}
	if h == nil {
		return fmt.Errorf("command %q: nil handler", path)
	}
	return r.add(&Record{
		Path:    segments,
		Help:    help,
		Handler: h,
		Params:  params,
	})
}

// Merge copies every record from the group into this registry, prepending
// the prefix (itself slash-splittable) as leading path segments. The group
// carries no further lifecycle after a merge.
func (r *Registry) Merge(g *Group, prefix string) error {
	var lead []string
	if prefix != "" {
		var err error
		lead, err = splitPath(prefix)
		if err != nil {
			return fmt.Errorf("group %s: bad prefix: %w", g.Name, err)
		}
	}

	for _, rec := range g.registry.records {
		merged := &Record{
			Path:    append(append([]string{}, lead...), rec.Path...),
			Help:    rec.Help,
			Handler: rec.Handler,
			Params:  rec.Params,
			Source:  g.Name,
		}
		if err := r.add(merged); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) add(rec *Record) error {
	key := strings.Join(rec.Path, "/")
	if existing, exists := r.byPath[key]; exists {
		return &ConflictError{Path: key, Existing: existing.Source, New: rec.Source}
	}
	r.byPath[key] = rec
	r.records = append(r.records, rec)
	return nil
}

func (r *Registry) Records() []*Record {
	return r.records
}

func (r *Registry) Lookup(path string) (*Record, bool) {
	rec, ok := r.byPath[path]
	return rec, ok
}

// Group is an independently defined bundle of registrations, mergeable
// into a parent registry under an optional prefix.
type Group struct {
	Name        string
	Description string
	registry    *Registry
}

func NewGroup(name, description string) *Group {
	return &Group{
		Name:        name,
		Description: description,
		registry:    NewRegistry(),
	}
}

func (g *Group) Register(path string, help string, h Handler, params ...*Param) error {
	return g.registry.Register(path, help, h, params...)
}

func splitPath(path string) ([]string, error) {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("empty command path %q", path)
	}
	return segments, nil
}
