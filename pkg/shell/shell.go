// Package shell runs a CLI's command tree as an interactive session with
// live tab completion, reusing the same longest-prefix matching and
// argument model as one-shot dispatch.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/slashline/slashline/pkg/cli"
	"github.com/slashline/slashline/pkg/logger"
)

type Shell struct {
	cli         *cli.CLI
	rl          *readline.Instance
	running     bool
	prompt      string
	historyFile string
	currentLine string
	sessionID   string
}

func New(c *cli.CLI, prompt, historyFile string) *Shell {
	if prompt == "" {
		prompt = c.Name + "> "
	}
	return &Shell{
		cli:         c,
		running:     true,
		prompt:      prompt,
		historyFile: historyFile,
		sessionID:   uuid.NewString(),
	}
}

func (s *Shell) Run(ctx context.Context) error {
	if _, err := s.cli.Tree(); err != nil {
		return err
	}

	var err error
	s.rl, err = readline.NewEx(&readline.Config{
		Prompt:              s.prompt,
		HistoryFile:         s.historyFile,
		AutoComplete:        &treeCompleter{shell: s},
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		FuncFilterInputRune: s.filterInputWithHelp,
		Listener:            s,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer s.rl.Close()

	log := logger.Get(logger.Shell)
	log.Debug("interactive session started",
		"session_id", s.sessionID,
		"prompt", s.prompt,
	)

	for s.running {
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					break
				}
				continue
			} else if err == io.EOF {
				break
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := s.processLine(ctx, line); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	return nil
}

func (s *Shell) Stop() {
	s.running = false
}

func (s *Shell) processLine(ctx context.Context, line string) error {
	if line == "exit" || line == "quit" {
		s.running = false
		return nil
	}

	if line == "?" {
		s.cli.Usage(os.Stdout)
		return nil
	}

	if strings.HasSuffix(line, "?") {
		s.showInlineHelp(strings.TrimSuffix(line, "?"))
		return nil
	}

	return s.cli.Dispatch(ctx, strings.Fields(line))
}

// OnChange tracks the line buffer so '?' help can restore it.
func (s *Shell) OnChange(line []rune, pos int, key rune) (newLine []rune, newPos int, ok bool) {
	s.currentLine = string(line)
	return nil, 0, false
}

func (s *Shell) filterInputWithHelp(r rune) (rune, bool) {
	if r == '?' {
		fmt.Print("?\n")
		s.showInlineHelp(s.currentLine)
		s.rl.Write([]byte(s.currentLine))
		return 0, false
	}
	if r == readline.CharCtrlZ {
		return r, false
	}
	return r, true
}

func (s *Shell) showInlineHelp(input string) {
	completions := s.completions(input)
	if len(completions) == 0 {
		s.cli.Usage(os.Stdout)
		return
	}
	fmt.Println()
	for _, comp := range completions {
		fmt.Printf("  %s\n", comp)
	}
	fmt.Println()
}
