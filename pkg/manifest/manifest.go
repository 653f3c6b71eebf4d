// Package manifest loads declarative command definitions from YAML and
// binds them to Go handlers by name. A manifest is the file-based face of
// the registration surface: path, help text, parameter list, and
// completion suggestions live in the document, handlers in code.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/slashline/slashline/pkg/cli"
	"github.com/slashline/slashline/pkg/logger"
)

type Manifest struct {
	Commands []CommandSpec `yaml:"commands"`
	Groups   []GroupSpec   `yaml:"groups"`
}

type CommandSpec struct {
	Path    string      `yaml:"path"`
	Help    string      `yaml:"help"`
	Handler string      `yaml:"handler"`
	Params  []ParamSpec `yaml:"params"`
}

type ParamSpec struct {
	Name     string   `yaml:"name"`
	Optional bool     `yaml:"optional"`
	Suggest  []string `yaml:"suggest"`
}

type GroupSpec struct {
	Name     string        `yaml:"name"`
	Prefix   string        `yaml:"prefix"`
	Commands []CommandSpec `yaml:"commands"`
}

func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest file: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}

	logger.Get(logger.Manifest).Debug("manifest loaded",
		"path", path,
		"commands", len(m.Commands),
		"groups", len(m.Groups),
	)
	return m, nil
}

func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("validate manifest: %w", err)
	}

	return &m, nil
}

func (m *Manifest) Validate() error {
	for i, cmd := range m.Commands {
		if err := cmd.validate(); err != nil {
			return fmt.Errorf("commands[%d]: %w", i, err)
		}
	}
	for i, g := range m.Groups {
		if g.Name == "" {
			return fmt.Errorf("groups[%d]: missing name", i)
		}
		for j, cmd := range g.Commands {
			if err := cmd.validate(); err != nil {
				return fmt.Errorf("groups[%d].commands[%d]: %w", i, j, err)
			}
		}
	}
	return nil
}

func (c *CommandSpec) validate() error {
	if c.Path == "" {
		return fmt.Errorf("missing path")
	}
	if c.Handler == "" {
		return fmt.Errorf("command %q: missing handler", c.Path)
	}
	seen := make(map[string]bool)
	for _, p := range c.Params {
		if p.Name == "" {
			return fmt.Errorf("command %q: param with empty name", c.Path)
		}
		if seen[p.Name] {
			return fmt.Errorf("command %q: duplicate param %q", c.Path, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// Apply registers every manifest command on the CLI, resolving handler
// names against the supplied map. Group specs are registered through a
// cli.Group and merged under their prefix, so cross-group path collisions
// surface here rather than at dispatch.
func (m *Manifest) Apply(c *cli.CLI, handlers map[string]cli.Handler) error {
	for _, cmd := range m.Commands {
		h, ok := handlers[cmd.Handler]
		if !ok {
			return fmt.Errorf("command %q: no handler named %q", cmd.Path, cmd.Handler)
		}
		if err := c.Register(cmd.Path, cmd.Help, h, cmd.params()...); err != nil {
			return err
		}
	}

	for _, spec := range m.Groups {
		g := cli.NewGroup(spec.Name, "")
		for _, cmd := range spec.Commands {
			h, ok := handlers[cmd.Handler]
			if !ok {
				return fmt.Errorf("group %s: command %q: no handler named %q",
					spec.Name, cmd.Path, cmd.Handler)
			}
			if err := g.Register(cmd.Path, cmd.Help, h, cmd.params()...); err != nil {
				return err
			}
		}
		if err := c.Merge(g, spec.Prefix); err != nil {
			return err
		}
	}

	logger.Get(logger.Manifest).Debug("manifest applied",
		"commands", len(m.Commands),
		"groups", len(m.Groups),
	)
	return nil
}

func (c *CommandSpec) params() []*cli.Param {
	out := make([]*cli.Param, len(c.Params))
	for i, p := range c.Params {
		out[i] = &cli.Param{
			Name:     p.Name,
			Optional: p.Optional,
			Values:   p.Suggest,
		}
	}
	return out
}
