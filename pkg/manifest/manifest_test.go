package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slashline/slashline/pkg/cli"
)

const sampleManifest = `
commands:
  - path: /greet
    help: Print a greeting
    handler: greet
    params:
      - name: name
        suggest: [alice, bob]
      - name: greeting
        optional: true
groups:
  - name: cluster
    prefix: cluster
    commands:
      - path: /add
        help: Add a node
        handler: cluster.add
        params:
          - name: node
`

func testHandlers() (map[string]cli.Handler, map[string]*cli.Invocation) {
	calls := make(map[string]*cli.Invocation)
	record := func(key string) cli.Handler {
		return func(ctx context.Context, inv *cli.Invocation) error {
			calls[key] = inv
			return nil
		}
	}
	return map[string]cli.Handler{
		"greet":       record("greet"),
		"cluster.add": record("cluster.add"),
	}, calls
}

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	require.Len(t, m.Commands, 1)
	assert.Equal(t, "/greet", m.Commands[0].Path)
	assert.Equal(t, "greet", m.Commands[0].Handler)
	require.Len(t, m.Commands[0].Params, 2)
	assert.Equal(t, []string{"alice", "bob"}, m.Commands[0].Params[0].Suggest)
	assert.True(t, m.Commands[0].Params[1].Optional)

	require.Len(t, m.Groups, 1)
	assert.Equal(t, "cluster", m.Groups[0].Prefix)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("commands: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse manifest")
}

func TestValidateRejectsBadSpecs(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing path",
			yaml: "commands:\n  - handler: h\n",
			want: "missing path",
		},
		{
			name: "missing handler",
			yaml: "commands:\n  - path: /x\n",
			want: "missing handler",
		},
		{
			name: "duplicate param",
			yaml: "commands:\n  - path: /x\n    handler: h\n    params:\n      - name: a\n      - name: a\n",
			want: "duplicate param",
		},
		{
			name: "group without name",
			yaml: "groups:\n  - prefix: g\n",
			want: "missing name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApply(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	handlers, calls := testHandlers()
	c := cli.New("testcli", "")
	require.NoError(t, m.Apply(c, handlers))

	require.NoError(t, c.Dispatch(context.Background(), []string{"greet", "alice"}))
	require.Contains(t, calls, "greet")
	assert.Equal(t, "alice", calls["greet"].Arg("name"))

	require.NoError(t, c.Dispatch(context.Background(), []string{"cluster", "add", "node1"}))
	require.Contains(t, calls, "cluster.add")
	assert.Equal(t, "node1", calls["cluster.add"].Arg("node"))
}

func TestApplyUnknownHandler(t *testing.T) {
	m, err := Parse([]byte("commands:\n  - path: /x\n    handler: nope\n"))
	require.NoError(t, err)

	c := cli.New("testcli", "")
	err = m.Apply(c, map[string]cli.Handler{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no handler named "nope"`)
}

func TestApplyGroupCollision(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	handlers, _ := testHandlers()
	c := cli.New("testcli", "")
	require.NoError(t, c.Register("/cluster/add", "", handlers["greet"]))

	err = m.Apply(c, handlers)
	require.ErrorIs(t, err, cli.ErrConflict)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "commands.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Commands, 1)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read manifest file")
}
