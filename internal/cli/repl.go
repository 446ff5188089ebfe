package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/suderio/handrit/driver"
)

const banner = "Enter REPL mode. Type 'exit' to leave."

func newREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Read expressions line by line and print their values.

Type 'exit' to leave and ':operators' to list the known operators.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
}

// lineReader is the part of liner.State the REPL loop uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type repl struct {
	machine *driver.Machine
	prompt  string
	out     io.Writer
	errOut  io.Writer
}

func runREPL(cmd *cobra.Command) error {
	s := getSettings(cmd.Context())
	history := s.cfg.HistoryFile

	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer func() {
		if err := os.MkdirAll(filepath.Dir(history), 0o750); err != nil {
			s.logger.Warn("failed to create history directory", "error", err)
		}
		if f, err := os.Create(history); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				s.logger.Warn("failed to write history", "error", err)
			}
		}
		line.Close()
	}()

	if f, err := os.Open(history); err == nil {
		if _, err := line.ReadHistory(f); err != nil {
			s.logger.Warn("failed to read history", "error", err)
		}
		f.Close()
	}

	r := &repl{
		machine: newMachine(s, s.cfg.ReuseOperators),
		prompt:  s.cfg.Prompt,
		out:     cmd.OutOrStdout(),
		errOut:  cmd.ErrOrStderr(),
	}
	return r.loop(line)
}

// loop runs until exit, end of input or an aborted prompt. Evaluation errors
// are printed and the loop goes on.
func (r *repl) loop(line lineReader) error {
	_, _ = fmt.Fprintln(r.out, banner)
	for {
		input, err := line.Prompt(r.prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		switch input {
		case "exit":
			return nil
		case ":operators":
			for _, op := range r.machine.Table().Operators() {
				_, _ = fmt.Fprintln(r.out, op.String())
			}
			continue
		}

		result, err := r.machine.Run(input)
		if err != nil {
			printError(r.errOut, err)
			continue
		}
		_, _ = fmt.Fprintln(r.out, result.String())
	}
}
