package engine

import (
	"context"
)

// List returns every tracked sandbox with its live observed state, sorted
// by name. It never mutates the registry.
func (e *Engine) List(ctx context.Context) ([]SandboxInfo, error) {
	reg, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	infos := make([]SandboxInfo, 0, len(reg.Sandboxes))
	for _, name := range reg.Names() {
		rec := reg.Get(name)
		infos = append(infos, infoFor(name, rec, e.prober.Probe(ctx, rec)))
	}
	return infos, nil
}

// Info returns one tracked sandbox with its live observed state.
func (e *Engine) Info(ctx context.Context, name string) (*SandboxInfo, error) {
	rec, err := e.lookup(name)
	if err != nil {
		return nil, err
	}
	info := infoFor(name, rec, e.prober.Probe(ctx, rec))
	return &info, nil
}
