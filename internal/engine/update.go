package engine

import (
	"fmt"
	"strings"

	"github.com/paddock-dev/paddock/internal/audit"
	"github.com/paddock-dev/paddock/internal/config"
	"github.com/paddock-dev/paddock/internal/errors"
	"github.com/paddock-dev/paddock/internal/registry"
)

// Set applies a partial metadata update. A new path is stored without
// checking that it exists; the next run or probe surfaces a stale one.
func (e *Engine) Set(opts SetOptions) error {
	var changes []string

	err := e.store.Update(func(reg *registry.Registry) error {
		rec := reg.Get(opts.Name)
		if rec == nil {
			return errors.NotTracked(opts.Name)
		}

		if opts.Agent != "" {
			agent := strings.ToLower(opts.Agent)
			if err := config.ValidateAgent(agent); err != nil {
				return errors.ValidationError(err.Error())
			}
			rec.Agent = agent
			changes = append(changes, "agent="+agent)
		}
		if opts.Cmd != nil {
			rec.Command = *opts.Cmd
			changes = append(changes, "cmd")
		}
		if opts.Path != "" {
			path, err := absPath(opts.Path)
			if err != nil {
				return err
			}
			rec.Path = path
			changes = append(changes, "path="+path)
		}
		if opts.Sandbox.set() {
			updated := applySandboxFlags(rec.Sandbox, opts.Sandbox)
			if !policyEqual(rec.Sandbox, updated) {
				rec.Sandbox = updated
				changes = append(changes, "sandbox")
			}
		}

		if len(changes) == 0 {
			return errors.ValidationError("nothing to update: provide --agent, --cmd, --path, or a sandbox flag")
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.logEvent(audit.EventSet, opts.Name, strings.Join(changes, " "))
	return nil
}

// SetEnv updates the record's environment: assignments (KEY=VALUE) are
// applied first, then unsets. Unsetting an absent key is a no-op.
func (e *Engine) SetEnv(name string, assignments, unset []string) error {
	pairs := make([][2]string, 0, len(assignments))
	for _, pair := range assignments {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return errors.ValidationError(fmt.Sprintf("invalid env pair %q, expected KEY=VALUE", pair))
		}
		pairs = append(pairs, [2]string{key, value})
	}

	err := e.store.Update(func(reg *registry.Registry) error {
		rec := reg.Get(name)
		if rec == nil {
			return errors.NotTracked(name)
		}
		if rec.Env == nil {
			rec.Env = map[string]string{}
		}
		for _, kv := range pairs {
			rec.Env[kv[0]] = kv[1]
		}
		for _, key := range unset {
			delete(rec.Env, key)
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.logEvent(audit.EventSetEnv, name, fmt.Sprintf("set=%d unset=%d", len(pairs), len(unset)))
	return nil
}
