package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/slashline/slashline/pkg/cli"
	"github.com/slashline/slashline/pkg/logger"
	"github.com/slashline/slashline/pkg/manifest"
	"github.com/slashline/slashline/pkg/shell"
)

var (
	interactive   = flag.Bool("i", false, "Run an interactive shell over the command tree")
	manifestPath  = flag.String("manifest", "", "Load additional commands from a YAML manifest")
	logLevel      = flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	logFormat     = flag.String("log-format", "text", "Log format (text or json)")
	logComponents = flag.String("log-components", "", "Per-component level overrides, e.g. dispatch=debug,shell=info")
)

func main() {
	flag.Parse()

	logger.Configure(*logFormat, logger.LogLevel(*logLevel), nil)
	for _, pair := range strings.Split(*logComponents, ",") {
		name, level, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			continue
		}
		logger.SetComponentLevel(name, logger.LogLevel(level))
	}

	log := logger.Get(logger.Main)
	log.Debug("starting",
		"interactive", *interactive,
		"manifest", *manifestPath,
	)

	c := cli.New("slashline", "declarative slash-path CLI builder demo")

	if err := registerCommands(c); err != nil {
		fmt.Fprintf(os.Stderr, "Command registration failed: %v\n", err)
		os.Exit(2)
	}

	if *manifestPath != "" {
		m, err := manifest.Load(*manifestPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Manifest error: %v\n", err)
			os.Exit(2)
		}
		if err := m.Apply(c, manifestHandlers()); err != nil {
			fmt.Fprintf(os.Stderr, "Manifest error: %v\n", err)
			os.Exit(2)
		}
	}

	// a conflicting tree must abort before any command can run
	if err := c.Build(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if *interactive {
		runShell(c)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		c.Usage(os.Stdout)
		return
	}

	if err := c.Dispatch(context.Background(), args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var bindErr *cli.BindingError
		if errors.As(err, &bindErr) && bindErr.Help != "" {
			fmt.Fprintf(os.Stderr, "\n%s\n", bindErr.Help)
		}
		if errors.Is(err, cli.ErrUnknownCommand) {
			fmt.Fprintln(os.Stderr)
			c.Usage(os.Stderr)
		}
		os.Exit(1)
	}
}

func runShell(c *cli.CLI) {
	sh := shell.New(c, "", os.ExpandEnv("$HOME/.slashline_history"))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		sh.Stop()
		os.Exit(0)
	}()

	if err := sh.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
