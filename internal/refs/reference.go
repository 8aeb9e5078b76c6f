package refs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that no documented entity matches a name.
var ErrNotFound = errors.New("reference not found")

// NoLookup is the @lookup token that disables resolution of unqualified names.
const NoLookup = "none"

// Reference is a resolved (or attempted) link to a documented entity.
type Reference struct {
	Name     string // qualified name as resolved
	Label    string // preferred display label
	TypeHint string // entity kind reported by the model, if any
	Href     string // link target; empty when resolution failed
}

// Resolved reports whether the reference carries a link target.
func (r *Reference) Resolved() bool {
	return r != nil && r.Href != ""
}

// LookupFunc resolves a qualified name against the documentation model.
// It returns a non-nil error wrapping ErrNotFound on a miss.
type LookupFunc func(name string, isType bool) (*Reference, error)

// CustomFunc resolves the part after "prefix:" in a tag.
// A false result falls through to the default resolver.
type CustomFunc func(name string) (*Reference, bool)

// Context holds the two qualification prefixes used for fallback lookups.
// Global is fixed for a session; Local belongs to one document.
type Context struct {
	Global string
	Local  string
}

// SetLocal applies an @lookup directive. The NoLookup token is stored as is;
// any other token becomes a "token." prefix.
func (c *Context) SetLocal(token string) {
	if token == NoLookup {
		c.Local = NoLookup
		return
	}
	c.Local = token + "."
}

// lookupDisabled reports whether unqualified names must fail.
func (c Context) lookupDisabled() bool {
	return c.Local == NoLookup
}

// Resolver resolves names and rewrites inline tags.
// A Resolver is read-only after construction and safe for concurrent use.
type Resolver struct {
	lookup    LookupFunc
	custom    map[string]CustomFunc
	backticks bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCustom registers a custom resolver for tags written as "prefix:name".
func WithCustom(prefix string, fn CustomFunc) Option {
	return func(r *Resolver) {
		if r.custom == nil {
			r.custom = make(map[string]CustomFunc)
		}
		r.custom[prefix] = fn
	}
}

// WithBackticks treats `name` spans as optional references.
func WithBackticks(enabled bool) Option {
	return func(r *Resolver) {
		r.backticks = enabled
	}
}

// NewResolver creates a Resolver over lookup.
// Panics if lookup is nil (programmer error).
func NewResolver(lookup LookupFunc, opts ...Option) *Resolver {
	if lookup == nil {
		panic("refs: NewResolver lookup must not be nil")
	}
	r := &Resolver{lookup: lookup}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Backticks reports whether backtick references are enabled.
func (r *Resolver) Backticks() bool {
	return r.backticks
}

// Resolve looks name up unqualified, then with the global prefix, then with
// the local prefix. The first hit wins. When every attempt misses, the error
// of the unqualified attempt is returned.
func (r *Resolver) Resolve(name string, isType bool, ctx Context) (*Reference, error) {
	if ctx.lookupDisabled() && !strings.Contains(name, ".") {
		return nil, fmt.Errorf("%w: %s (lookup disabled)", ErrNotFound, name)
	}

	ref, err := r.lookup(name, isType)
	if err == nil && ref.Resolved() {
		return ref, nil
	}
	if err == nil {
		err = fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	if ctx.Global != "" {
		if hit, e := r.lookup(ctx.Global+name, isType); e == nil && hit.Resolved() {
			return hit, nil
		}
	}
	if ctx.Local != "" && !ctx.lookupDisabled() {
		if hit, e := r.lookup(ctx.Local+name, isType); e == nil && hit.Resolved() {
			return hit, nil
		}
	}

	return nil, err
}

// resolveTag resolves the name part of a tag, honouring custom prefixes.
func (r *Resolver) resolveTag(name string, ctx Context) (*Reference, error) {
	if prefix, rest, ok := strings.Cut(name, ":"); ok {
		if fn, found := r.custom[prefix]; found {
			if ref, hit := fn(rest); hit && ref.Resolved() {
				return ref, nil
			}
			return r.Resolve(rest, false, ctx)
		}
	}
	return r.Resolve(name, false, ctx)
}
