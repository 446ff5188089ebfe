package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var errNoInput = errors.New("no expression given")

// readInput returns the contents of the file named value if such a file
// exists, and value itself otherwise.
func readInput(value string) (string, error) {
	info, err := os.Stat(value)
	if err != nil || !info.Mode().IsRegular() {
		return value, nil
	}
	data, err := os.ReadFile(value)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", value, err)
	}
	return string(data), nil
}

// expression picks the --input flag or the single argument.
func expression(cmd *cobra.Command, args []string) (string, error) {
	input, _ := cmd.Flags().GetString("input")
	if input == "" && len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		return "", errNoInput
	}
	return readInput(input)
}

func newRPNCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rpn [expression|file]",
		Short: "Print the RPN form of an expression",
		Long: `Convert an expression to reverse polish notation.

The input is read from the file of that name if it exists, otherwise it is
the expression itself.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := expression(cmd, args)
			if err != nil {
				return err
			}
			m := newMachine(getSettings(cmd.Context()), false)
			out, err := m.ToRPN(source)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringP("input", "i", "", "Expression or path of a file holding it")
	return cmd
}

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [expression|file]",
		Short: "Evaluate an expression",
		Long: `Evaluate an expression and print its value.

The input is read from the file of that name if it exists, otherwise it is
the expression itself.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := expression(cmd, args)
			if err != nil {
				return err
			}
			m := newMachine(getSettings(cmd.Context()), false)
			result, err := m.Run(source)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.String())
			return nil
		},
	}
	cmd.Flags().StringP("input", "i", "", "Expression or path of a file holding it")
	return cmd
}

func newBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Compile an expression (not yet implemented)",
		Args:  cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not yet implemented")
		},
	}
}
