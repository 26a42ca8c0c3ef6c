// Package status derives the observed state of a tracked sandbox by
// combining filesystem checks with live git queries. Observed state is
// never cached into the registry; it is recomputed on every probe.
package status

import (
	"context"

	"github.com/paddock-dev/paddock/internal/gitx"
	"github.com/paddock-dev/paddock/internal/registry"
	"github.com/paddock-dev/paddock/internal/system"
)

// Observed is the live state of one sandbox. Dirty, Ahead, and Behind are
// nil when they cannot be determined (missing path, no upstream).
type Observed struct {
	PathExists bool   `json:"pathExists"`
	Dirty      *bool  `json:"dirty"`
	Ahead      *int   `json:"ahead"`
	Behind     *int   `json:"behind"`
	Upstream   string `json:"upstream,omitempty"`
}

// Label renders the observed state as the short status word shown in
// list output.
func (o Observed) Label() string {
	if o.PathExists {
		return "ready"
	}
	return "missing"
}

// Prober computes Observed for registry records.
type Prober struct {
	git *gitx.Git
	fs  system.FileSystem
}

// NewProber returns a prober using the given git facade and filesystem.
func NewProber(git *gitx.Git, fs system.FileSystem) *Prober {
	return &Prober{git: git, fs: fs}
}

// Probe inspects the record's worktree. It degrades gracefully: a missing
// path or unreadable git state yields unknowns rather than an error.
func (p *Prober) Probe(ctx context.Context, rec *registry.Record) Observed {
	obs := Observed{}
	if rec.Path == "" || !p.fs.Exists(rec.Path) {
		return obs
	}
	obs.PathExists = true

	if dirty, err := p.git.IsDirty(ctx, rec.Path); err == nil {
		obs.Dirty = &dirty
	}

	obs.Upstream = p.git.Upstream(ctx, rec.Path)
	if ahead, behind, ok := p.git.AheadBehind(ctx, rec.Path); ok {
		obs.Ahead = &ahead
		obs.Behind = &behind
	}
	return obs
}
