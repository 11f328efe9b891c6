package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abhisek/kanaflash/internal/session"
	"github.com/abhisek/kanaflash/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent study sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			return fmt.Errorf("--limit must be positive")
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if rt.history == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded.")
			return nil
		}
		recs, err := rt.history.Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		writeHistory(cmd.OutOrStdout(), recs)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of sessions to show")
}

// writeHistory prints session records newest first, as returned by Recent.
func writeHistory(w io.Writer, recs []store.SessionRecord) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No sessions recorded.")
		return
	}

	fmt.Fprintf(w, "%-16s  %-20s  %8s  %5s  %8s  %7s  %s\n",
		"Started", "Mode", "Duration", "Cards", "Answered", "Correct", "")
	fmt.Fprintln(w, strings.Repeat("─", 86))

	for _, r := range recs {
		status := "done"
		if !r.Completed {
			status = "ended early"
		}
		fmt.Fprintf(w, "%-16s  %-20s  %8s  %5d  %8d  %7d  %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			modeLabel(r.Mode),
			r.Duration().Round(time.Second),
			r.DeckSize, r.Answered, r.Correct, status)
	}
}

func modeLabel(s string) string {
	if m, err := session.ParseMode(s); err == nil {
		return m.Label()
	}
	return s
}
