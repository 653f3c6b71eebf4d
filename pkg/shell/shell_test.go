package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultsPrompt(t *testing.T) {
	s := testShell(t)
	assert.Equal(t, "testcli> ", s.prompt)
}

func TestNewAssignsSessionID(t *testing.T) {
	a := testShell(t)
	b := testShell(t)

	assert.NotEmpty(t, a.sessionID)
	assert.NotEqual(t, a.sessionID, b.sessionID)
}
