package domain

import (
	"fmt"
	"reflect"
	"runtime"
	"sort"
	"strings"
	"unicode"

	"go.trai.ch/zerr"
)

// RegistrationFailure records one part that could not be registered.
// Registration is best-effort: a broken part must not block building
// the rest, but the failure is kept so the caller can report it.
type RegistrationFailure struct {
	Name string
	Err  error
}

// Registry holds the set of named parts belonging to one project.
// It is populated once at process start and is not safe for concurrent use.
type Registry struct {
	parts    map[string]Model
	failures []RegistrationFailure
}

// NewRegistry creates an empty part registry.
func NewRegistry() *Registry {
	return &Registry{parts: make(map[string]Model)}
}

// Add registers a model under the given name. A duplicate name or a nil
// model is recorded as a registration failure and the registry keeps its
// previous state.
func (r *Registry) Add(name string, model Model) error {
	if model == nil {
		err := zerr.With(ErrNilModel, "part", name)
		r.failures = append(r.failures, RegistrationFailure{Name: name, Err: err})
		return err
	}
	if _, exists := r.parts[name]; exists {
		err := zerr.With(ErrPartAlreadyExists, "part", name)
		r.failures = append(r.failures, RegistrationFailure{Name: name, Err: err})
		return err
	}
	r.parts[name] = model
	return nil
}

// AddFunc invokes fn to construct a model and registers it under a name
// derived from the function identifier (lower-cased, word separators
// replaced with hyphens). A panicking constructor abandons only this
// registration; the failure is recorded and other parts are unaffected.
func (r *Registry) AddFunc(fn func() Model) error {
	name := deriveName(fn)

	model, err := construct(fn)
	if err != nil {
		r.failures = append(r.failures, RegistrationFailure{Name: name, Err: err})
		return err
	}
	return r.Add(name, model)
}

func construct(fn func() Model) (model Model, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = zerr.With(zerr.New("part constructor panicked"), "panic", fmt.Sprint(rec))
		}
	}()
	return fn(), nil
}

// Get returns the model registered under name.
func (r *Registry) Get(name string) (Model, error) {
	model, ok := r.parts[name]
	if !ok {
		return nil, zerr.With(ErrPartNotFound, "part", name)
	}
	return model, nil
}

// Parts returns all registered parts sorted by name, so that output
// never depends on registration order.
func (r *Registry) Parts() []Part {
	parts := make([]Part, 0, len(r.parts))
	for name, model := range r.parts {
		parts = append(parts, Part{Name: name, Model: model})
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].Name < parts[j].Name })
	return parts
}

// Len returns the number of registered parts.
func (r *Registry) Len() int {
	return len(r.parts)
}

// Failures returns the registration failures collected so far.
func (r *Registry) Failures() []RegistrationFailure {
	return r.failures
}

// deriveName turns a function identifier into a part name:
// "BoltM8" -> "bolt-m8", "wing_nut" -> "wing-nut".
func deriveName(fn func() Model) string {
	full := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()

	// Strip package path and method/closure decorations.
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	if i := strings.Index(full, "."); i >= 0 {
		full = full[i+1:]
	}
	full = strings.TrimSuffix(full, "-fm")

	var b strings.Builder
	prevLower := false
	for _, r := range full {
		switch {
		case r == '_' || r == '.' || r == '-':
			b.WriteByte('-')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return strings.Trim(b.String(), "-")
}
