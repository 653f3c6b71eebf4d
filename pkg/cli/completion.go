package cli

import (
	"fmt"
	"strings"
)

// Synthesize emits a self-contained bash completion script mirroring the
// tree: the script replays the same longest-prefix match over the words
// typed so far, then suggests child segment names, option names, and
// author-registered value hints for the slot under the cursor. It is a
// pure function of the tree; an unchanged tree yields byte-identical
// output, so regenerating never dirties a user's saved file.
func Synthesize(t *Tree, prog string) string {
	fn := "_" + sanitizeIdent(prog)

	var paths []string
	t.root.walk(nil, func(path []string, node *Node) {
		paths = append(paths, "/"+strings.Join(path, "/"))
	})

	var b strings.Builder
	fmt.Fprintf(&b, "# bash completion for %s\n", prog)
	fmt.Fprintf(&b, "# generated by %s --completion; regenerate rather than edit\n", prog)
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("\n")
	b.WriteString("    local path=\"\" idx=1 word\n")

	if len(paths) > 0 {
		b.WriteString("    while [[ $idx -lt $COMP_CWORD ]]; do\n")
		b.WriteString("        word=\"${COMP_WORDS[$idx]}\"\n")
		b.WriteString("        case \"${path}/${word}\" in\n")
		fmt.Fprintf(&b, "        %s)\n", strings.Join(paths, "|"))
		b.WriteString("            path=\"${path}/${word}\"\n")
		b.WriteString("            ;;\n")
		b.WriteString("        *)\n")
		b.WriteString("            break\n")
		b.WriteString("            ;;\n")
		b.WriteString("        esac\n")
		b.WriteString("        idx=$((idx+1))\n")
		b.WriteString("    done\n")
		b.WriteString("\n")
	}

	b.WriteString("    case \"$path\" in\n")
	t.root.walk(nil, func(path []string, node *Node) {
		writeNodeCase(&b, "/"+strings.Join(path, "/"), node)
	})

	// root: no path matched yet, suggest top-level commands
	b.WriteString("    *)\n")
	writeCompgen(&b, "        ", t.root.childNames())
	b.WriteString("        ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "complete -F %s %s\n", fn, prog)

	return b.String()
}

func writeNodeCase(b *strings.Builder, path string, node *Node) {
	fmt.Fprintf(b, "    %s)\n", path)

	if node.Record == nil || len(node.Record.Params) == 0 {
		writeCompgen(b, "        ", node.childNames())
		b.WriteString("        return\n")
		b.WriteString("        ;;\n")
		return
	}

	params := node.Record.Params

	names := make([]string, len(params))
	options := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
		options[i] = "--" + p.Name
	}

	// value suggestions when the cursor follows a recognized --option
	b.WriteString("        case \"$prev\" in\n")
	for _, p := range params {
		fmt.Fprintf(b, "        --%s)\n", p.Name)
		if len(p.Values) > 0 {
			writeCompgen(b, "            ", p.Values)
		}
		b.WriteString("            return\n")
		b.WriteString("            ;;\n")
	}
	b.WriteString("        esac\n")

	// scan the words between the matched path and the cursor: count
	// positional tokens and collect keyword-claimed parameter names,
	// skipping each bare option's consumed value
	b.WriteString("        local n=0 j=$idx tok claimed=\"\"\n")
	b.WriteString("        while [[ $j -lt $COMP_CWORD ]]; do\n")
	b.WriteString("            tok=\"${COMP_WORDS[$j]}\"\n")
	b.WriteString("            case \"$tok\" in\n")
	b.WriteString("            --*=*)\n")
	b.WriteString("                tok=\"${tok#--}\"\n")
	b.WriteString("                claimed=\"$claimed ${tok%%=*}\"\n")
	b.WriteString("                ;;\n")
	fmt.Fprintf(b, "            %s)\n", strings.Join(options, "|"))
	b.WriteString("                claimed=\"$claimed ${tok#--}\"\n")
	b.WriteString("                j=$((j+1))\n")
	b.WriteString("                ;;\n")
	b.WriteString("            --*)\n")
	b.WriteString("                ;;\n")
	b.WriteString("            *)\n")
	b.WriteString("                n=$((n+1))\n")
	b.WriteString("                ;;\n")
	b.WriteString("            esac\n")
	b.WriteString("            j=$((j+1))\n")
	b.WriteString("        done\n")

	// the next bare token binds to the n-th declared parameter not
	// claimed by a keyword, same rule the resolver applies
	b.WriteString("        local slot=\"\" k=$n pname words=\"\"\n")
	fmt.Fprintf(b, "        for pname in %s; do\n", strings.Join(names, " "))
	b.WriteString("            case \" $claimed \" in\n")
	b.WriteString("            *\" $pname \"*) continue ;;\n")
	b.WriteString("            esac\n")
	b.WriteString("            if [[ $k -eq 0 ]]; then\n")
	b.WriteString("                slot=\"$pname\"\n")
	b.WriteString("                break\n")
	b.WriteString("            fi\n")
	b.WriteString("            k=$((k-1))\n")
	b.WriteString("        done\n")

	var hinted []*Param
	for _, p := range params {
		if len(p.Values) > 0 {
			hinted = append(hinted, p)
		}
	}
	if len(hinted) > 0 {
		b.WriteString("        case \"$slot\" in\n")
		for _, p := range hinted {
			fmt.Fprintf(b, "        %s) words=\"%s\" ;;\n", p.Name, strings.Join(p.Values, " "))
		}
		b.WriteString("        esac\n")
	}

	if children := node.childNames(); len(children) > 0 {
		b.WriteString("        if [[ $n -eq 0 && -z \"$claimed\" ]]; then\n")
		fmt.Fprintf(b, "            words=\"%s $words\"\n", strings.Join(children, " "))
		b.WriteString("        fi\n")
	}

	// option keywords stay on offer until claimed
	fmt.Fprintf(b, "        for pname in %s; do\n", strings.Join(names, " "))
	b.WriteString("            case \" $claimed \" in\n")
	b.WriteString("            *\" $pname \"*) ;;\n")
	b.WriteString("            *) words=\"$words --$pname\" ;;\n")
	b.WriteString("            esac\n")
	b.WriteString("        done\n")
	b.WriteString("        COMPREPLY=( $(compgen -W \"$words\" -- \"$cur\") )\n")
	b.WriteString("        return\n")
	b.WriteString("        ;;\n")
}

func writeCompgen(b *strings.Builder, indent string, words []string) {
	if len(words) == 0 {
		return
	}
	fmt.Fprintf(b, "%sCOMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n",
		indent, strings.Join(words, " "))
}

func sanitizeIdent(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "cli"
	}
	return b.String()
}
