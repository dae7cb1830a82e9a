package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Attempt records one provider try.
type Attempt struct {
	Provider string
	Stage    string // "lookup" or "ok"
	Err      error
}

// Registry is a read-only, ordered index of providers.
type Registry struct {
	byName map[string]Provider
	order  []string
}

// NewRegistry indexes providers in registration order. Names are
// case-insensitive and must be unique.
func NewRegistry(providers ...Provider) (Registry, error) {
	byName := make(map[string]Provider, len(providers))
	order := make([]string, 0, len(providers))
	for _, p := range providers {
		if p == nil {
			return Registry{}, errors.New("provider must not be nil")
		}
		name := strings.ToLower(strings.TrimSpace(p.Name()))
		if name == "" {
			return Registry{}, errors.New("provider name must not be empty")
		}
		if _, ok := byName[name]; ok {
			return Registry{}, fmt.Errorf("duplicate provider %q", name)
		}
		byName[name] = p
		order = append(order, name)
	}
	return Registry{byName: byName, order: order}, nil
}

// Get returns the provider registered under name.
func (r Registry) Get(name string) (Provider, bool) {
	if r.byName == nil {
		return nil, false
	}
	p, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Names lists providers in registration order.
func (r Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Lookup queries the requested provider and falls back to the others in
// registration order. An empty request starts with the first provider.
func (r Registry) Lookup(ctx context.Context, requested string, q Query) (Title, string, []Attempt, error) {
	order, err := r.fallbackOrder(requested)
	if err != nil {
		return Title{}, "", nil, err
	}

	var (
		attempts []Attempt
		lastErr  error
	)
	for _, name := range order {
		if err := ctx.Err(); err != nil {
			return Title{}, "", attempts, err
		}
		title, err := r.byName[name].Lookup(ctx, q)
		if err != nil {
			var provErr *Error
			if !errors.As(err, &provErr) {
				err = &Error{Provider: name, Stage: "lookup", Err: err}
			}
			lastErr = err
			attempts = append(attempts, Attempt{Provider: name, Stage: "lookup", Err: err})
			continue
		}
		attempts = append(attempts, Attempt{Provider: name, Stage: "ok"})
		return title, name, attempts, nil
	}
	if lastErr == nil {
		lastErr = errors.New("no catalog providers registered")
	}
	return Title{}, "", attempts, lastErr
}

func (r Registry) fallbackOrder(requested string) ([]string, error) {
	requested = strings.ToLower(strings.TrimSpace(requested))
	if requested == "" {
		return r.Names(), nil
	}
	if _, ok := r.byName[requested]; !ok {
		return nil, fmt.Errorf("unknown catalog provider %q (available: %s)", requested, strings.Join(r.order, ", "))
	}
	order := []string{requested}
	for _, name := range r.order {
		if name != requested {
			order = append(order, name)
		}
	}
	return order, nil
}
