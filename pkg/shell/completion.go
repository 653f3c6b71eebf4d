package shell

import (
	"strings"

	"github.com/slashline/slashline/pkg/cli"
)

// completions computes the suggestion list for the current input: command
// and subcommand names while descending the tree, then option keywords
// and registered value hints once a command is matched. Ordering follows
// child-insertion and parameter declaration order throughout.
func (s *Shell) completions(input string) []string {
	tree, err := s.cli.Tree()
	if err != nil {
		return nil
	}

	tokens := strings.Fields(input)
	endsWithSpace := len(input) > 0 && input[len(input)-1] == ' '

	current := tree.Root()
	depth := 0

	for i, token := range tokens {
		if !endsWithSpace && i == len(tokens)-1 {
			break
		}

		child := current.Child(token)
		if child == nil {
			if current.Record != nil {
				break
			}
			return nil
		}
		current = child
		depth = i + 1
	}

	argTokens := tokens[depth:]

	if !endsWithSpace && len(tokens) > 0 {
		prefix := tokens[len(tokens)-1]
		candidates := suggestAt(current, argTokens[:max(0, len(argTokens)-1)])
		var out []string
		for _, c := range candidates {
			if strings.HasPrefix(c, prefix) {
				out = append(out, c)
			}
		}
		return out
	}

	return suggestAt(current, argTokens)
}

// suggestAt lists everything valid after the given argument tokens at a
// node: child segment names first, then hint values for the slot under
// the cursor, then unused option keywords.
func suggestAt(node *cli.Node, argTokens []string) []string {
	var out []string

	if len(argTokens) == 0 {
		for _, child := range node.Children() {
			out = append(out, child.Name)
		}
	}

	rec := node.Record
	if rec == nil || len(rec.Params) == 0 {
		return out
	}

	// cursor right after a bare --option: its registered values, nothing else
	if len(argTokens) > 0 {
		last := argTokens[len(argTokens)-1]
		if strings.HasPrefix(last, "--") && len(last) > 2 && !strings.Contains(last, "=") {
			if p := rec.Param(last[2:]); p != nil {
				return append([]string{}, p.Values...)
			}
		}
	}

	if p := positionalParam(rec, argTokens); p != nil {
		out = append(out, p.Values...)
	}

	used := make(map[string]bool)
	for i := 0; i < len(argTokens); i++ {
		t := argTokens[i]
		if strings.HasPrefix(t, "--") && len(t) > 2 {
			name, _, hasValue := strings.Cut(t[2:], "=")
			used[name] = true
			if !hasValue {
				i++
			}
		}
	}
	for _, p := range rec.Params {
		if !used[p.Name] {
			out = append(out, "--"+p.Name)
		}
	}

	return out
}

// positionalParam returns the parameter the next positional token would
// bind to: the n-th declared parameter not claimed by a keyword, where n
// is the number of positional tokens already present.
func positionalParam(rec *cli.Record, argTokens []string) *cli.Param {
	claimed := make(map[string]bool)
	n := 0
	for i := 0; i < len(argTokens); i++ {
		t := argTokens[i]
		if strings.HasPrefix(t, "--") && len(t) > 2 {
			name, _, hasValue := strings.Cut(t[2:], "=")
			claimed[name] = true
			if !hasValue {
				i++
			}
			continue
		}
		n++
	}

	idx := 0
	for _, p := range rec.Params {
		if claimed[p.Name] {
			continue
		}
		if idx == n {
			return p
		}
		idx++
	}
	return nil
}

type treeCompleter struct {
	shell *Shell
}

func (tc *treeCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	input := string(line[:pos])
	completions := tc.shell.completions(input)

	if len(completions) == 0 {
		return nil, 0
	}

	lastSpace := -1
	for i := pos - 1; i >= 0; i-- {
		if line[i] == ' ' {
			lastSpace = i
			break
		}
	}

	partialWord := ""
	if lastSpace >= 0 {
		partialWord = string(line[lastSpace+1 : pos])
	} else {
		partialWord = string(line[:pos])
	}

	result := make([][]rune, len(completions))
	for i, c := range completions {
		if len(partialWord) > 0 && len(c) >= len(partialWord) {
			result[i] = []rune(c[len(partialWord):])
		} else {
			result[i] = []rune(c)
		}
	}

	return result, len(partialWord)
}
