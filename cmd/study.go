package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/kanaflash/internal/session"
	"github.com/abhisek/kanaflash/internal/study"
	"github.com/spf13/cobra"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Start a study session with the filtered characters",
	Long: "Selects every character matching the filters and opens a study session.\n" +
		"Without filters the whole catalog is studied.",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}
		modeFlag, _ := cmd.Flags().GetString("mode")
		var mode session.Mode
		if modeFlag != "" {
			if mode, err = session.ParseMode(modeFlag); err != nil {
				return err
			}
		}
		noShuffle, _ := cmd.Flags().GetBool("no-shuffle")

		return runApp(cmd, launch{
			startStudy: true,
			prepare: func(ctx context.Context, ctrl *study.Controller) error {
				chars := ctrl.Catalog().Filter(f)
				if len(chars) == 0 {
					return fmt.Errorf("no characters match: %w", study.ErrEmptySelection)
				}
				ctrl.SetSelection(chars)
				if mode != "" {
					ctrl.SetMode(ctx, mode)
				}
				if noShuffle {
					ctrl.SetShuffle(false)
				}
				return nil
			},
		})
	},
}

func init() {
	addFilterFlags(studyCmd)
	studyCmd.Flags().String("mode", "", "Study mode (character-to-sound or sound-to-character)")
	studyCmd.Flags().Bool("no-shuffle", false, "Keep catalog order instead of shuffling")
}
