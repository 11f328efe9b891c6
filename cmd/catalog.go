package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/kanaflash/internal/catalog"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List characters (optionally filtered by script, level or search)",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}
		chars := catalog.Default().Filter(f)
		if len(chars) == 0 {
			return fmt.Errorf("no characters match the filters")
		}
		writeCatalog(cmd.OutOrStdout(), chars)
		return nil
	},
}

func init() {
	addFilterFlags(catalogCmd)
}

// writeCatalog prints chars as a table. Glyph columns are padded by display
// width so kanji and kana line up.
func writeCatalog(w io.Writer, chars []catalog.Character) {
	fmt.Fprintf(w, "%-12s  %s  %-10s  %-9s  %5s  %s\n",
		"ID", runewidth.FillRight("Glyph", 5), "Romaji", "Script", "Level", "Meaning")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	for _, ch := range chars {
		meaning := runewidth.Truncate(ch.Meaning, 24, "...")
		fmt.Fprintf(w, "%-12s  %s  %-10s  %-9s  %5s  %s\n",
			ch.ID, runewidth.FillRight(ch.Glyph, 5), ch.Romaji,
			ch.Script.Label(), ch.LevelLabel(), meaning)
	}

	fmt.Fprintf(w, "\n%d characters\n", len(chars))
}
