package registry

import (
	"encoding/json"
	"fmt"
	"sort"
)

// CurrentVersion is the registry document schema version.
const CurrentVersion = 1

// SandboxPolicy holds the confinement settings stored per record.
type SandboxPolicy struct {
	Enabled     bool     `json:"enabled"`
	Profile     string   `json:"profile,omitempty"`
	DenyNetwork bool     `json:"denyNetwork"`
	Write       []string `json:"write,omitempty"`
}

// Clone returns a deep copy of the policy.
func (p *SandboxPolicy) Clone() *SandboxPolicy {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Write = append([]string(nil), p.Write...)
	return &cp
}

// Record is one tracked sandbox: a git worktree an agent runs in.
// Unknown JSON fields survive a load/save cycle untouched so newer
// paddock versions can extend the schema without older ones destroying it.
type Record struct {
	Path      string
	Branch    string
	Base      string
	Agent     string
	Command   string
	Env       map[string]string
	Sandbox   *SandboxPolicy
	CreatedAt string

	extra map[string]json.RawMessage
}

// recordJSON mirrors Record's known wire fields.
type recordJSON struct {
	Path      string            `json:"path"`
	Branch    string            `json:"branch"`
	Base      string            `json:"base"`
	Agent     string            `json:"agent"`
	Command   string            `json:"command"`
	Env       map[string]string `json:"env"`
	Sandbox   *SandboxPolicy    `json:"sandbox,omitempty"`
	CreatedAt string            `json:"createdAt"`
}

var recordKeys = []string{"path", "branch", "base", "agent", "command", "env", "sandbox", "createdAt"}

func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var known recordJSON
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	r.Path = known.Path
	r.Branch = known.Branch
	r.Base = known.Base
	r.Agent = known.Agent
	r.Command = known.Command
	r.Env = known.Env
	r.Sandbox = known.Sandbox
	r.CreatedAt = known.CreatedAt
	if r.Env == nil {
		r.Env = map[string]string{}
	}

	for _, key := range recordKeys {
		delete(fields, key)
	}
	if len(fields) > 0 {
		r.extra = fields
	} else {
		r.extra = nil
	}
	return nil
}

func (r *Record) MarshalJSON() ([]byte, error) {
	env := r.Env
	if env == nil {
		env = map[string]string{}
	}
	known, err := json.Marshal(recordJSON{
		Path:      r.Path,
		Branch:    r.Branch,
		Base:      r.Base,
		Agent:     r.Agent,
		Command:   r.Command,
		Env:       env,
		Sandbox:   r.Sandbox,
		CreatedAt: r.CreatedAt,
	})
	if err != nil {
		return nil, err
	}
	if len(r.extra) == 0 {
		return known, nil
	}

	merged := make(map[string]json.RawMessage, len(r.extra)+len(recordKeys))
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for key, raw := range r.extra {
		merged[key] = raw
	}
	return json.Marshal(merged)
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	cp := *r
	cp.Env = make(map[string]string, len(r.Env))
	for k, v := range r.Env {
		cp.Env[k] = v
	}
	cp.Sandbox = r.Sandbox.Clone()
	if r.extra != nil {
		cp.extra = make(map[string]json.RawMessage, len(r.extra))
		for k, v := range r.extra {
			cp.extra[k] = v
		}
	}
	return &cp
}

// Registry is the persisted mapping of sandbox name to record. It is the
// sole source of truth for desired state; filesystem and git reality are
// observed live and never cached here.
type Registry struct {
	Version   int
	Sandboxes map[string]*Record

	extra map[string]json.RawMessage
}

type registryJSON struct {
	Version   int                `json:"version"`
	Sandboxes map[string]*Record `json:"sandboxes"`
}

var registryKeys = []string{"version", "sandboxes"}

// New returns an empty registry at the current schema version.
func New() *Registry {
	return &Registry{
		Version:   CurrentVersion,
		Sandboxes: map[string]*Record{},
	}
}

func (r *Registry) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var known registryJSON
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	r.Version = known.Version
	r.Sandboxes = known.Sandboxes
	if r.Version == 0 {
		r.Version = CurrentVersion
	}
	if r.Sandboxes == nil {
		r.Sandboxes = map[string]*Record{}
	}

	for _, key := range registryKeys {
		delete(fields, key)
	}
	if len(fields) > 0 {
		r.extra = fields
	} else {
		r.extra = nil
	}
	return nil
}

func (r *Registry) MarshalJSON() ([]byte, error) {
	sandboxes := r.Sandboxes
	if sandboxes == nil {
		sandboxes = map[string]*Record{}
	}
	known, err := json.Marshal(registryJSON{
		Version:   r.Version,
		Sandboxes: sandboxes,
	})
	if err != nil {
		return nil, err
	}
	if len(r.extra) == 0 {
		return known, nil
	}

	merged := make(map[string]json.RawMessage, len(r.extra)+len(registryKeys))
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for key, raw := range r.extra {
		merged[key] = raw
	}
	return json.Marshal(merged)
}

// Names returns the tracked sandbox names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Sandboxes))
	for name := range r.Sandboxes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the record for name, or nil when untracked.
func (r *Registry) Get(name string) *Record {
	return r.Sandboxes[name]
}

// Add inserts a record under name. It fails when the name is empty or
// already tracked, before any mutation.
func (r *Registry) Add(name string, rec *Record) error {
	if name == "" {
		return fmt.Errorf("sandbox name cannot be empty")
	}
	if _, exists := r.Sandboxes[name]; exists {
		return fmt.Errorf("sandbox %q already tracked", name)
	}
	r.Sandboxes[name] = rec
	return nil
}

// Delete removes the record for name. Removing an untracked name is a no-op.
func (r *Registry) Delete(name string) {
	delete(r.Sandboxes, name)
}
