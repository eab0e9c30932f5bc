package handler

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// ErrMissingHandler matches every MissingHandlerError via errors.Is.
var ErrMissingHandler = errors.New("handler not registered")

// MissingHandlerError reports a handler block naming an unregistered handler.
type MissingHandlerError struct {
	Document string
	Name     string
}

func (e *MissingHandlerError) Error() string {
	return fmt.Sprintf("%s: no handler registered for %q", e.Document, e.Name)
}

// Is reports whether target is ErrMissingHandler.
func (e *MissingHandlerError) Is(target error) bool {
	return target == ErrMissingHandler
}

// Registry maps handler names to implementations. It is populated during site
// construction and only read afterwards, so lookups take no lock.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds h under name.
// Returns an error if name is empty, h is nil or name is already taken.
func (r *Registry) Register(name string, h Handler) error {
	if name == "" {
		return fmt.Errorf("cannot register handler with empty name")
	}
	if h == nil {
		return fmt.Errorf("cannot register nil handler %q", name)
	}
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("handler %q already registered", name)
	}
	r.handlers[name] = h
	return nil
}

// Alias registers an existing handler under an additional name.
func (r *Registry) Alias(alias, target string) error {
	h, ok := r.handlers[target]
	if !ok {
		return fmt.Errorf("alias %q: handler %q not registered", alias, target)
	}
	return r.Register(alias, h)
}

// RegisterAliases registers every alias -> target pair in name order.
func (r *Registry) RegisterAliases(aliases map[string]string) error {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := r.Alias(name, aliases[name]); err != nil {
			return err
		}
	}
	return nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Names returns the registered names sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Dispatch invokes the handler named req.Name. Handler errors are returned
// unchanged.
func (r *Registry) Dispatch(ctx context.Context, req Request) (string, error) {
	h, ok := r.handlers[req.Name]
	if !ok {
		return "", &MissingHandlerError{Document: req.Document, Name: req.Name}
	}
	return h.Render(ctx, req)
}
