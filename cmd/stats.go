package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/kanaflash/internal/catalog"
	"github.com/abhisek/kanaflash/internal/progress"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		st := rt.tracker.Stats(catalog.Default().All())
		writeStats(cmd.OutOrStdout(), st)
		return nil
	},
}

// writeStats prints the progress overview, per-script mastery and the
// needs-practice list.
func writeStats(w io.Writer, st progress.Stats) {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "Characters   %d\n", st.Total)
	p.Fprintf(w, "Mastered     %d (%.1f%%)\n", st.Mastered, percent(st.Mastered, st.Total))
	p.Fprintf(w, "Answers      %d\n", st.Attempts)
	p.Fprintf(w, "Accuracy     %.1f%%\n", st.Accuracy)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-10s  %9s  %7s\n", "Script", "Mastered", "Total")
	fmt.Fprintln(w, strings.Repeat("─", 30))
	for _, s := range st.ByScript {
		p.Fprintf(w, "%-10s  %9d  %7d\n", s.Script.Label(), s.Mastered, s.Total)
	}

	if len(st.NeedsPractice) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Needs practice")
	for _, np := range st.NeedsPractice {
		fmt.Fprintf(w, "  %s  %-10s  %d correct / %d incorrect\n",
			np.Character.Glyph, np.Character.Romaji, np.Entry.CorrectCount, np.Entry.IncorrectCount)
	}
	if st.NeedsPracticeMore > 0 {
		fmt.Fprintf(w, "  ... and %d more\n", st.NeedsPracticeMore)
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
