package cli

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConflict       = errors.New("conflicting command registration")
	ErrUnknownCommand = errors.New("unknown command")
	ErrBinding        = errors.New("invalid arguments")
)

// ConflictError reports two records resolving to the same final path.
// It is fatal: the tree would otherwise have silently shadowed commands.
type ConflictError struct {
	Path     string
	Existing string
	New      string
}

func (e *ConflictError) Error() string {
	if e.Existing != "" || e.New != "" {
		return fmt.Sprintf("duplicate command %q (existing source: %s, new source: %s)",
			e.Path, sourceName(e.Existing), sourceName(e.New))
	}
	return fmt.Sprintf("duplicate command %q", e.Path)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

func sourceName(s string) string {
	if s == "" {
		return "direct"
	}
	return s
}

// UnknownCommandError reports a token sequence that matched no invocable
// command. Matched holds the segments that did match, Token the first
// token that did not (empty when input ended on a grouping segment), and
// Suggestions the valid next segments at that point, in tree order.
type UnknownCommandError struct {
	Matched     []string
	Token       string
	Suggestions []string
}

func (e *UnknownCommandError) Error() string {
	var b strings.Builder
	b.WriteString("unknown command")
	if len(e.Matched) > 0 {
		fmt.Fprintf(&b, " under %q", strings.Join(e.Matched, " "))
	}
	if e.Token != "" {
		fmt.Fprintf(&b, ": %q", e.Token)
	} else if len(e.Matched) > 0 {
		b.WriteString(": incomplete command")
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, " (expected one of: %s)", strings.Join(e.Suggestions, ", "))
	}
	return b.String()
}

func (e *UnknownCommandError) Unwrap() error { return ErrUnknownCommand }

// BindingError reports that the raw tokens could not be bound to the
// handler's declared parameters. The handler is never invoked. Help is
// filled in by the dispatcher when the matched record carries help text.
type BindingError struct {
	Detail  string
	Option  string
	Missing []string
	Help    string
}

func (e *BindingError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing required arguments: %s", strings.Join(e.Missing, ", "))
	}
	return e.Detail
}

func (e *BindingError) Unwrap() error { return ErrBinding }
