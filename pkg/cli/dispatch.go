package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/slashline/slashline/pkg/logger"
)

const completionFlag = "--completion"

// CLI is the top-level dispatch object. It owns a registry during the
// registration phase and an immutable tree afterwards; Build draws the
// line between the two. There is no package-level instance.
type CLI struct {
	Name        string
	Description string

	registry *Registry
	tree     *Tree
	out      io.Writer
}

func New(name, description string) *CLI {
	return &CLI{
		Name:        name,
		Description: description,
		registry:    NewRegistry(),
		out:         os.Stdout,
	}
}

func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

func (c *CLI) Register(path string, help string, h Handler, params ...*Param) error {
	if c.tree != nil {
		return fmt.Errorf("command %q registered after build", path)
	}
	return c.registry.Register(path, help, h, params...)
}

func (c *CLI) Merge(g *Group, prefix string) error {
	if c.tree != nil {
		return fmt.Errorf("group %s merged after build", g.Name)
	}
	return c.registry.Merge(g, prefix)
}

// Build constructs the command tree. It runs at most once; Dispatch calls
// it lazily if the caller has not. A conflict here is a configuration
// error and no command should be served afterwards.
func (c *CLI) Build() error {
	if c.tree != nil {
		return nil
	}
	tree, err := Build(c.registry)
	if err != nil {
		return err
	}
	c.tree = tree
	return nil
}

func (c *CLI) Tree() (*Tree, error) {
	if err := c.Build(); err != nil {
		return nil, err
	}
	return c.tree, nil
}

func (c *CLI) Registry() *Registry {
	return c.registry
}

// Dispatch resolves argv against the command tree and invokes the matched
// handler exactly once with its bound arguments. The reserved form
// argv == ["--completion"] emits the completion script instead; the same
// token anywhere else is an ordinary token.
func (c *CLI) Dispatch(ctx context.Context, argv []string) error {
	if err := c.Build(); err != nil {
		return err
	}

	if len(argv) == 1 && argv[0] == completionFlag {
		_, err := io.WriteString(c.out, Synthesize(c.tree, c.Name))
		return err
	}

	node, rest, err := c.tree.ResolvePrefix(argv)
	if err != nil {
		return err
	}

	args, err := Resolve(node.Record.Params, rest)
	if err != nil {
		var bindErr *BindingError
		if errors.As(err, &bindErr) && node.Record.Help != "" {
			bindErr.Help = node.Record.Help
		}
		return err
	}

	log := logger.Get(logger.Dispatch)
	log.Debug("invoking handler",
		"invocation_id", uuid.NewString(),
		"command", strings.Join(node.Record.Path, " "),
		"args", len(args),
	)

	return node.Record.Handler(ctx, &Invocation{
		Path: node.Record.Path,
		Args: args,
	})
}

// Usage writes the registered command table in registration order.
func (c *CLI) Usage(w io.Writer) {
	if c.Description != "" {
		fmt.Fprintf(w, "%s - %s\n\n", c.Name, c.Description)
	} else {
		fmt.Fprintf(w, "%s\n\n", c.Name)
	}
	fmt.Fprintln(w, "Available commands:")
	for _, rec := range c.registry.Records() {
		path := strings.Join(rec.Path, " ")
		if rec.Help != "" {
			fmt.Fprintf(w, "  %-24s %s\n", path, rec.Help)
		} else {
			fmt.Fprintf(w, "  %s\n", path)
		}
	}
}
