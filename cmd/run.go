package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/wondershelf/internal/app"
	shelfscreen "github.com/abhisek/wondershelf/internal/screens/shelf"
)

// runApp builds dependencies and launches the TUI. Logs go to the log file
// or nowhere, since the TUI owns the terminal.
func runApp(cmd *cobra.Command) error {
	rt, err := setup(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer rt.Close()

	skipSplash, _ := cmd.Flags().GetBool("no-splash")

	return app.Run(app.Options{
		Home: shelfscreen.Deps{
			Shelves:      rt.shelves,
			Activities:   rt.activities,
			Generator:    rt.generator,
			StoryOptions: rt.storyOptions(),
		},
		Status:     rt.status(),
		Offline:    rt.provider == nil,
		SkipSplash: skipSplash,
	})
}
