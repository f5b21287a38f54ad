// Package envscope resolves configuration values from a flat string key/value
// store using a layered fallback naming scheme. Callers ask for a short
// logical key such as "url" and a Scope searches composite names built from
// an optional prefix, namespace and deployment target, from most specific to
// least specific, returning the first one bound in the source.
package envscope

import (
	"errors"
	"os"
	"strings"
)

const (
	// DefaultTarget is the deployment target used when none is configured.
	DefaultTarget = "development"

	// TargetVar is the process environment variable FromEnv reads the
	// deployment target from.
	TargetVar = "APP_ENV"
)

// Scope resolves logical keys against a Source. It is immutable after
// construction: every lookup is a pure function of the key and the fixed
// prefix/namespace/target configuration, so a Scope may be shared between
// goroutines without coordination. Use With to derive a sibling Scope for a
// different target.
type Scope struct {
	source    Source
	prefix    string
	namespace string
	target    string
}

// Option configures a Scope during construction.
type Option func(*Scope)

// WithSource sets the environment source the Scope queries.
func WithSource(src Source) Option {
	return func(s *Scope) {
		s.source = src
	}
}

// WithPrefix sets the key prefix, e.g. an organization name.
func WithPrefix(prefix string) Option {
	return func(s *Scope) {
		s.prefix = prefix
	}
}

// WithNamespace sets the key namespace, e.g. a project name.
func WithNamespace(namespace string) Option {
	return func(s *Scope) {
		s.namespace = namespace
	}
}

// WithTarget sets the deployment target, e.g. "production".
func WithTarget(target string) Option {
	return func(s *Scope) {
		s.target = target
	}
}

// New creates a Scope. Without options it queries an empty in-memory source
// with no prefix, no namespace and the "development" target.
func New(opts ...Option) *Scope {
	s := &Scope{
		source: NewMapSource(nil, ""),
		target: DefaultTarget,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromEnv creates a Scope backed by the process environment, with the target
// taken from the APP_ENV variable (falling back to "development" when unset
// or empty). Options are applied afterwards and may override both.
func FromEnv(opts ...Option) *Scope {
	target := DefaultTarget
	if v, ok := os.LookupEnv(TargetVar); ok && v != "" {
		target = v
	}
	base := []Option{WithSource(EnvSource{}), WithTarget(target)}
	return New(append(base, opts...)...)
}

// With derives a Scope with a different target, sharing the source, prefix
// and namespace of the receiver. The receiver is left untouched.
func (s *Scope) With(target string) *Scope {
	return &Scope{
		source:    s.source,
		prefix:    s.prefix,
		namespace: s.namespace,
		target:    target,
	}
}

// Candidates returns the six composite names searched for the given logical
// key, most specific first:
//
//	PREFIX_NAMESPACE_TARGET_KEY
//	NAMESPACE_TARGET_KEY
//	PREFIX_NAMESPACE_KEY
//	NAMESPACE_KEY
//	PREFIX_KEY
//	KEY
//
// Target-specific names are consulted only in combination with the
// namespace; the prefix-only name is tried last before the bare key. Every
// name is upper-cased and joined with underscores, keeping the empty
// segments contributed by unset configuration fields.
func (s *Scope) Candidates(key string) []string {
	p := segments(s.prefix)
	n := segments(s.namespace)
	t := segments(s.target)
	k := segments(key)
	return []string{
		compose(p, n, t, k),
		compose(n, t, k),
		compose(p, n, k),
		compose(n, k),
		compose(p, k),
		compose(k),
	}
}

// Required resolves key and returns the value of the first candidate name
// bound in the source. A name counts as bound even when its value is empty.
// When no candidate is bound it returns a *MissingKeyError listing every
// name searched; source access errors are returned as-is.
func (s *Scope) Required(key string) (string, error) {
	names := s.Candidates(key)
	for _, name := range names {
		val, found, err := s.source.Lookup(name)
		if err != nil {
			return "", err
		}
		if found {
			return val, nil
		}
	}
	return "", &MissingKeyError{Key: key, Tried: names}
}

// Optional resolves key like Required but falls back to defaultVal when no
// candidate name is bound. An empty default does not count as supplied: the
// MissingKeyError is returned instead of "". Source access errors are never
// swallowed by a default.
func (s *Scope) Optional(key string, defaultVal ...string) (string, error) {
	val, err := s.Required(key)
	if err == nil {
		return val, nil
	}
	if errors.Is(err, ErrMissingKey) && len(defaultVal) > 0 && defaultVal[0] != "" {
		return defaultVal[0], nil
	}
	return "", err
}

// segments splits s on the '_' and '.' delimiters. The split is deliberately
// naive: consecutive delimiters keep their empty tokens and the empty string
// yields a single empty segment, so composing names reproduces the leading
// and doubled underscores of unset fields instead of collapsing them.
func segments(s string) []string {
	return strings.Split(strings.ReplaceAll(s, ".", "_"), "_")
}

func compose(groups ...[]string) string {
	size := 0
	for _, g := range groups {
		size += len(g)
	}
	parts := make([]string, 0, size)
	for _, g := range groups {
		parts = append(parts, g...)
	}
	return strings.ToUpper(strings.Join(parts, "_"))
}
