package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/HugoDaniel/minijs/internal/minifier"
	"github.com/HugoDaniel/minijs/pkg/api"

	"github.com/peterh/liner"
)

const (
	historyFile = ".minijs_history"
	prompt      = "minijs> "
)

var replCommands = []string{":help", ":json", ":optimize ", ":passes", ":quit"}

const replHelp = `Enter JavaScript to see what is known about each expression.
Commands:
  :optimize <code>  print the optimized code
  :json             toggle JSON output
  :passes           list the fold passes
  :help             show this help
  :quit             leave the session`

// replSession evaluates REPL input. It is kept apart from the line editor
// so it can run against plain writers.
type replSession struct {
	opts minifier.Options
	json bool
	out  io.Writer
}

// eval handles one line of input and reports whether the session should end.
func (s *replSession) eval(line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, ":") {
		cmd, arg, _ := strings.Cut(line, " ")
		switch cmd {
		case ":quit", ":q":
			return true
		case ":help":
			fmt.Fprintln(s.out, replHelp)
		case ":json":
			s.json = !s.json
			fmt.Fprintf(s.out, "json output %s\n", onOff(s.json))
		case ":passes":
			fmt.Fprintln(s.out, strings.Join(api.Passes(), "\n"))
		case ":optimize":
			s.optimize(arg)
		default:
			fmt.Fprintf(s.out, "unknown command %s. Type :help for help.\n", cmd)
		}
		return false
	}

	s.analyze(line)
	return false
}

func (s *replSession) analyze(code string) {
	if s.json {
		if err := writeJSON(s.out, api.Analyze(code, apiOptions(s.opts)), true); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		return
	}
	analysis, err := minifier.New(s.opts).Analyze(code)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	for _, d := range analysis.Diagnostics {
		fmt.Fprintf(s.out, "%s\n", d.Error())
	}
	for _, f := range analysis.Facts {
		fmt.Fprintln(s.out, f.Format())
	}
}

func (s *replSession) optimize(code string) {
	if s.json {
		if err := writeJSON(s.out, api.Optimize(code, apiOptions(s.opts)), true); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		return
	}
	result, err := minifier.New(s.opts).Optimize(code)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, strings.TrimRight(result.Code, "\n"))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func runREPL(opts minifier.Options) error {
	opts.Filename = "<repl>"
	session := &replSession{opts: opts, out: os.Stdout}
	fmt.Printf("minijs v%s. Type :help for help.\n", version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) (c []string) {
		for _, cmd := range replCommands {
			if strings.HasPrefix(cmd, line) {
				c = append(c, cmd)
			}
		}
		return c
	})

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if session.eval(line) {
			return nil
		}
	}
}
