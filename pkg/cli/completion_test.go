package cli

import (
	"strings"
	"testing"
)

func synthTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	if err := r.Register("/greet", "Print a greeting", noopHandler,
		&Param{Name: "name", Values: []string{"alice", "bob"}},
		&Param{Name: "greeting", Optional: true, Values: []string{"hello", "hey"}},
	); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register("/cluster/add", "Add a node", noopHandler,
		&Param{Name: "node"},
	); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register("/cluster/remove", "Remove a node", noopHandler,
		&Param{Name: "node"},
	); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

func TestSynthesizeIdempotent(t *testing.T) {
	r := synthTestRegistry(t)

	tree1, err := Build(r)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	tree2, err := Build(r)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	a := Synthesize(tree1, "testcli")
	b := Synthesize(tree1, "testcli")
	c := Synthesize(tree2, "testcli")
	if a != b {
		t.Fatal("same tree must synthesize byte-identical output")
	}
	if a != c {
		t.Fatal("rebuilt tree must synthesize byte-identical output")
	}
}

func TestSynthesizeScriptShape(t *testing.T) {
	r := synthTestRegistry(t)
	tree, err := Build(r)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	script := Synthesize(tree, "testcli")

	for _, want := range []string{
		"_testcli() {",
		"complete -F _testcli testcli",
		"/greet|/cluster|/cluster/add|/cluster/remove)",
		"COMP_WORDS",
	} {
		if !strings.Contains(script, want) {
			t.Fatalf("script missing %q:\n%s", want, script)
		}
	}
}

func TestSynthesizeHintOrderPreserved(t *testing.T) {
	r := synthTestRegistry(t)
	tree, err := Build(r)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	script := Synthesize(tree, "testcli")

	// value hints after --name, verbatim and in author order
	if !strings.Contains(script, `compgen -W "alice bob"`) {
		t.Fatalf("script missing --name hint list:\n%s", script)
	}
	// slot hint lists, verbatim and in author order
	if !strings.Contains(script, `name) words="alice bob" ;;`) {
		t.Fatalf("script missing name slot hints:\n%s", script)
	}
	if !strings.Contains(script, `greeting) words="hello hey" ;;`) {
		t.Fatalf("script missing greeting slot hints:\n%s", script)
	}
	// params iterated in declaration order for slot selection and options
	if !strings.Contains(script, "for pname in name greeting; do") {
		t.Fatalf("script missing declaration-order param walk:\n%s", script)
	}
}

func TestSynthesizeClaimedOptionAdvancesSlot(t *testing.T) {
	r := synthTestRegistry(t)
	tree, err := Build(r)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	script := Synthesize(tree, "testcli")

	// keyword tokens record the parameter they claim, in both forms
	if !strings.Contains(script, `claimed="$claimed ${tok%%=*}"`) {
		t.Fatalf("script does not collect --name=value claims:\n%s", script)
	}
	if !strings.Contains(script, `claimed="$claimed ${tok#--}"`) {
		t.Fatalf("script does not collect bare --name claims:\n%s", script)
	}
	// slot selection walks declared params and skips claimed ones
	if !strings.Contains(script, `*" $pname "*) continue ;;`) {
		t.Fatalf("script does not skip claimed params for the slot:\n%s", script)
	}
	// claimed options drop out of the keyword suggestions
	if !strings.Contains(script, `*) words="$words --$pname" ;;`) {
		t.Fatalf("script does not filter claimed options:\n%s", script)
	}
}

func TestSynthesizeChildOrderPreserved(t *testing.T) {
	r := synthTestRegistry(t)
	tree, err := Build(r)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	script := Synthesize(tree, "testcli")

	// root suggestions in registration order
	if !strings.Contains(script, `compgen -W "greet cluster"`) {
		t.Fatalf("script missing root suggestions:\n%s", script)
	}
	// grouping segment suggests its subcommands
	if !strings.Contains(script, `compgen -W "add remove"`) {
		t.Fatalf("script missing grouping suggestions:\n%s", script)
	}
}

func TestSynthesizeSanitizesProgramName(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("/v", "", noopHandler); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tree, err := Build(r)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	script := Synthesize(tree, "my-cli")
	if !strings.Contains(script, "_my_cli() {") {
		t.Fatalf("function name not sanitized:\n%s", script)
	}
	if !strings.Contains(script, "complete -F _my_cli my-cli") {
		t.Fatalf("complete hook must keep the real program name:\n%s", script)
	}
}
