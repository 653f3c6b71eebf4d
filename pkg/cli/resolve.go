package cli

import (
	"fmt"
	"strings"
)

// Resolve binds raw tokens to the declared parameters, left to right.
// Three forms are recognized: a bare token fills the next positional slot
// not claimed by a keyword, --name=value binds directly, and --name
// consumes the following token as its value. When a parameter is bound
// more than once the later token wins. Unknown keyword names and leftover
// positional tokens are rejected.
func Resolve(params []*Param, tokens []string) (map[string]string, error) {
	args := make(map[string]string, len(params))
	claimed := make(map[string]bool)
	next := 0

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		if strings.HasPrefix(token, "--") && len(token) > 2 {
			name, value, hasValue := strings.Cut(token[2:], "=")
			if paramByName(params, name) == nil {
				return nil, &BindingError{
					Detail: fmt.Sprintf("unknown option --%s", name),
					Option: name,
				}
			}
			if !hasValue {
				if i == len(tokens)-1 {
					return nil, &BindingError{
						Detail: fmt.Sprintf("option --%s requires a value", name),
						Option: name,
					}
				}
				i++
				value = tokens[i]
			}
			args[name] = value
			claimed[name] = true
			continue
		}

		for next < len(params) && claimed[params[next].Name] {
			next++
		}
		if next >= len(params) {
			return nil, &BindingError{
				Detail: fmt.Sprintf("unexpected argument %q", token),
			}
		}
		args[params[next].Name] = token
		next++
	}

	var missing []string
	for _, p := range params {
		if p.Optional {
			continue
		}
		if _, ok := args[p.Name]; !ok {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &BindingError{Missing: missing}
	}

	return args, nil
}

func paramByName(params []*Param, name string) *Param {
	for _, p := range params {
		if p.Name == name {
			return p
		}
	}
	return nil
}
