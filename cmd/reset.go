package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long: "Without flags, wipes all progress and every saved selection, mode and theme.\n" +
		"With --session, --mode or --theme, clears only those saved snapshots.",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionOnly, _ := cmd.Flags().GetBool("session")
		modeOnly, _ := cmd.Flags().GetBool("mode")
		themeOnly, _ := cmd.Flags().GetBool("theme")
		yes, _ := cmd.Flags().GetBool("yes")

		full := !sessionOnly && !modeOnly && !themeOnly
		out := cmd.OutOrStdout()

		if full && !yes {
			ok, err := confirm(cmd.InOrStdin(), out, "Reset all progress and saved state?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		if full {
			rt.ctrl.ResetProgress(ctx)
			fmt.Fprintln(out, "Progress reset.")
			return nil
		}
		if sessionOnly {
			rt.ctrl.ClearSession(ctx)
			fmt.Fprintln(out, "Saved selection cleared.")
		}
		if modeOnly {
			rt.ctrl.ClearMode(ctx)
			fmt.Fprintln(out, "Saved mode cleared.")
		}
		if themeOnly {
			rt.ctrl.ClearTheme(ctx)
			fmt.Fprintln(out, "Saved theme cleared.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("session", false, "Clear only the saved selection")
	resetCmd.Flags().Bool("mode", false, "Clear only the saved study mode")
	resetCmd.Flags().Bool("theme", false, "Clear only the saved theme")
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

// confirm asks a yes/no question and reads one line from in. Anything other
// than y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
