// Package repl is the interactive terminal front end.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"acrunner/internal/cli/command"
	"acrunner/internal/config"
	"acrunner/internal/judge/event"
	"acrunner/internal/judge/result"
	"acrunner/internal/problem/state"
	"acrunner/internal/testcase"
	"acrunner/pkg/utils/logger"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"go.uber.org/zap"
)

const prompt = "acrunner> "

// ErrExit is returned by Execute when the user asks to leave.
var ErrExit = errors.New("exit requested")

// RunController starts runs.
type RunController interface {
	RunAll(ctx context.Context) (result.RunSummary, error)
	RunOne(ctx context.Context, index int) (result.RunSummary, error)
}

// Session holds REPL state.
type Session struct {
	runs     RunController
	holder   *state.Holder
	settings *config.Store
	commands map[string]command.Command

	mu  sync.Mutex
	out io.Writer
}

// New creates a session writing to out.
func New(runs RunController, holder *state.Holder, settings *config.Store, out io.Writer) *Session {
	return &Session{
		runs:     runs,
		holder:   holder,
		settings: settings,
		commands: command.Registry(),
		out:      out,
	}
}

// Run reads lines until exit, EOF or ctx cancellation. Events received on
// events are printed while the session runs.
func (s *Session) Run(ctx context.Context, events <-chan event.Event, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       historyFile,
		AutoComplete:      s.completer(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("init readline failed: %w", err)
	}
	s.setOutput(rl.Stdout())

	// Cancelling sessionCtx stops the renderer and closes readline, which
	// unblocks a pending Readline call.
	var wg sync.WaitGroup
	sessionCtx, stop := context.WithCancel(ctx)
	defer func() {
		stop()
		wg.Wait()
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-sessionCtx.Done()
		_ = rl.Close()
	}()
	if events != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.render(sessionCtx, events)
		}()
	}

	s.printLine("acrunner ready. Type help for commands.")
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read input failed: %w", err)
		}
		if err := s.Execute(ctx, line); err != nil {
			if errors.Is(err, ErrExit) {
				s.printLine("bye")
				return nil
			}
			s.printLine("error: %v", err)
		}
	}
}

// Execute runs one input line.
func (s *Session) Execute(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	tokens, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("parse command failed: %w", err)
	}
	if len(tokens) == 0 {
		return nil
	}
	cmd, ok := s.commands[strings.ToLower(tokens[0])]
	if !ok {
		return fmt.Errorf("unknown command: %s (try help)", tokens[0])
	}
	args := tokens[1:]
	if err := cmd.CheckArgs(args); err != nil {
		return err
	}

	switch cmd.Name {
	case command.Run:
		return s.handleRun(ctx, args)
	case command.Interpreter:
		return s.handleInterpreter(args[0])
	case command.Cases:
		return s.handleCases()
	case command.Show:
		return s.handleShow(args[0])
	case command.Help:
		s.printHelp()
		return nil
	case command.Exit:
		return ErrExit
	}
	return fmt.Errorf("unknown command: %s", cmd.Name)
}

// handleRun starts a run and waits for it. Failures are already reported as
// notices by the run service, so they are only logged here.
func (s *Session) handleRun(ctx context.Context, args []string) error {
	var err error
	if len(args) == 0 {
		_, err = s.runs.RunAll(ctx)
	} else {
		index, parseErr := command.ParseIndex(args[0])
		if parseErr != nil {
			return parseErr
		}
		_, err = s.runs.RunOne(ctx, index)
	}
	if err != nil {
		logger.Debug(ctx, "run ended with error", zap.Error(err))
	}
	return nil
}

func (s *Session) handleInterpreter(value string) error {
	interp, err := s.settings.SetInterpreter(value)
	if err != nil {
		return err
	}
	current := s.settings.Get()
	s.printLine("interpreter set to %s (%s)", interp, current.Command())
	return nil
}

func (s *Session) handleCases() error {
	problem, ok := s.holder.Get()
	if !ok {
		s.printLine("no problem loaded")
		return nil
	}
	settings := s.settings.Get()
	workspaceRoot, err := settings.ResolveWorkspaceRoot()
	if err != nil {
		return err
	}
	cases := testcase.CollectCases(problem.CasesDir(workspaceRoot))
	if len(cases) == 0 {
		s.printLine("no cases in %s", problem.CasesDir(workspaceRoot))
		return nil
	}
	s.printLine("%d cases in %s", len(cases), problem.CasesDir(workspaceRoot))
	for _, tc := range cases {
		input, _ := testcase.ReadInput(tc)
		s.printLine("  #%d  %s", tc.Index, firstLine(input))
	}
	return nil
}

func (s *Session) handleShow(what string) error {
	switch what {
	case "problem":
		problem, ok := s.holder.Get()
		if !ok {
			s.printLine("no problem loaded")
			return nil
		}
		s.printLine("name:        %s", problem.Name)
		s.printLine("group:       %s", problem.Group)
		s.printLine("url:         %s", problem.URL)
		s.printLine("task:        %s/%s", problem.ContestID, problem.TaskID)
		s.printLine("time limit:  %d ms", problem.TimeLimit)
		s.printLine("memory:      %d MB", problem.MemoryLimit)
		s.printLine("interactive: %t", problem.Interactive)
		s.printLine("cases:       %d", len(problem.Cases))
	case "config":
		settings := s.settings.Get()
		s.printLine("file:        %s", s.settings.Path())
		s.printLine("workspace:   %s", settings.WorkspaceRoot)
		s.printLine("interpreter: %s (%s)", settings.Interpreter, settings.Command())
		s.printLine("cwd mode:    %s", settings.RunCwdMode)
		if settings.TimeoutMs != nil {
			s.printLine("timeout:     %d ms", *settings.TimeoutMs)
		} else {
			s.printLine("timeout:     time limit + 20%%")
		}
		policy := settings.ComparePolicy()
		s.printLine("compare:     %s, case sensitive %t", policy.Mode, policy.CaseSensitive)
	}
	return nil
}

func (s *Session) printHelp() {
	for _, cmd := range command.Sorted(s.commands) {
		s.printLine("  %-26s %s", cmd.Usage(), cmd.Summary)
	}
}

func (s *Session) render(ctx context.Context, events <-chan event.Event) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.mu.Lock()
			RenderEvent(s.out, ev)
			s.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(s.commands))
	for _, cmd := range command.Sorted(s.commands) {
		var children []readline.PrefixCompleterInterface
		for _, arg := range cmd.Args {
			for _, choice := range arg.Choices {
				children = append(children, readline.PcItem(choice))
			}
		}
		items = append(items, readline.PcItem(cmd.Name, children...))
	}
	return readline.NewPrefixCompleter(items...)
}

func (s *Session) setOutput(w io.Writer) {
	s.mu.Lock()
	s.out = w
	s.mu.Unlock()
}

func (s *Session) printLine(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.out, format+"\n", args...)
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(testcase.NormalizeLineEndings(text), "\n")
	if len(line) > 60 {
		return line[:60] + "..."
	}
	return line
}
