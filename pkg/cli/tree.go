package cli

import "strings"

// Node is one path segment's position in the command tree. Record is nil
// for pure grouping segments that only exist because a deeper command was
// registered. Children keep insertion order so completion output is
// deterministic.
type Node struct {
	Name     string
	Record   *Record
	children []*Node
}

func (n *Node) Child(name string) *Node {
	for _, child := range n.children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) childNames() []string {
	names := make([]string, len(n.children))
	for i, child := range n.children {
		names[i] = child.Name
	}
	return names
}

type Tree struct {
	root *Node
}

// Build constructs the node tree from the registry, walking or creating
// nodes along each record's path and attaching the record to the final
// segment. The registry rejects duplicate paths at registration time, so
// a record landing on a node that already carries one indicates a registry
// assembled by hand; it is still reported as a conflict here.
func Build(r *Registry) (*Tree, error) {
	t := &Tree{root: &Node{}}

	for _, rec := range r.Records() {
		current := t.root
		for _, segment := range rec.Path {
			child := current.Child(segment)
			if child == nil {
				child = &Node{Name: segment}
				current.children = append(current.children, child)
			}
			current = child
		}
		if current.Record != nil {
			return nil, &ConflictError{
				Path:     joinPath(rec.Path),
				Existing: current.Record.Source,
				New:      rec.Source,
			}
		}
		current.Record = rec
	}

	return t, nil
}

func (t *Tree) Root() *Node {
	return t.root
}

// ResolvePrefix performs longest-prefix greedy matching: tokens are
// consumed one at a time descending into matching children until the
// first token with no matching child. The node reached must itself be
// invocable; a grouping segment is an unknown command, not a silent
// no-op. Remaining tokens are returned as the raw argument list.
func (t *Tree) ResolvePrefix(tokens []string) (*Node, []string, error) {
	current := t.root
	consumed := 0

	for consumed < len(tokens) {
		child := current.Child(tokens[consumed])
		if child == nil {
			break
		}
		current = child
		consumed++
	}

	if current.Record == nil {
		unmatched := ""
		if consumed < len(tokens) {
			unmatched = tokens[consumed]
		}
		return nil, nil, &UnknownCommandError{
			Matched:     tokens[:consumed],
			Token:       unmatched,
			Suggestions: current.childNames(),
		}
	}

	return current, tokens[consumed:], nil
}

// walk visits every node below n depth-first in child-insertion order,
// passing the slash-free path accumulated so far.
func (n *Node) walk(path []string, fn func(path []string, node *Node)) {
	for _, child := range n.children {
		childPath := make([]string, len(path)+1)
		copy(childPath, path)
		childPath[len(path)] = child.Name
		fn(childPath, child)
		child.walk(childPath, fn)
	}
}

func joinPath(segments []string) string {
	return strings.Join(segments, "/")
}
