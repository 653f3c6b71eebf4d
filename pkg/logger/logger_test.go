package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestComponentLevelOverride(t *testing.T) {
	Configure("text", LogLevelWarn, nil)
	h := NewTextHandler(&bytes.Buffer{}, nil, Manifest)

	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug must be disabled at the default warn level")
	}

	SetComponentLevel(Manifest, LogLevelDebug)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug must be enabled after the component override")
	}

	ClearComponentLevel(Manifest)
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("clearing the override must restore the default level")
	}
}

func TestComponentLevelDottedFallback(t *testing.T) {
	Configure("text", LogLevelWarn, nil)
	SetComponentLevel(Shell, LogLevelDebug)
	defer ClearComponentLevel(Shell)

	h := NewTextHandler(&bytes.Buffer{}, nil, Shell+".completer")
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("child component must inherit the parent override")
	}
}

func TestTextHandlerFormat(t *testing.T) {
	Configure("text", LogLevelDebug, nil)
	defer Configure("text", LogLevelWarn, nil)

	var buf bytes.Buffer
	log := slog.New(NewTextHandler(&buf, nil, Dispatch))
	log.Info("command dispatched", "command", "greet")

	out := buf.String()
	for _, want := range []string{"[dispatch]", "command dispatched", "command=greet"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log line missing %q: %s", want, out)
		}
	}
}

func TestGetCachesLoggers(t *testing.T) {
	if Get(Main) != Get(Main) {
		t.Fatal("Get must return the cached logger for a component")
	}
	if Get(Main) == Get(Dispatch) {
		t.Fatal("different components must not share a logger")
	}
}
