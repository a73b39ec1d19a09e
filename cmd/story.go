package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wondershelf/internal/shelf"
	"github.com/abhisek/wondershelf/internal/story"
)

var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "Play the interactive story in the terminal, line by line",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer rt.Close()

		theme, _ := cmd.Flags().GetString("theme")
		cardID, _ := cmd.Flags().GetString("card")
		asJSON, _ := cmd.Flags().GetBool("json")

		opts := rt.storyOptions()
		if cardID != "" {
			card, err := shelf.Find(rt.shelves, cardID)
			if err != nil {
				return err
			}
			if card.Kind != shelf.KindStory {
				return fmt.Errorf("card %s is a %s card, not a story", card.ID, card.Kind)
			}
			if card.Theme != "" {
				opts = append(opts, story.WithLockedTheme(card.Theme))
			}
		}

		f := story.NewFlow(rt.generator, opts...)
		if err := runStoryLoop(cmd.Context(), f, theme, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			return err
		}
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(f.Snapshot())
		}
		return nil
	},
}

func init() {
	storyCmd.Flags().StringP("theme", "t", "", "Story theme; prompted for when empty")
	storyCmd.Flags().String("card", "", "Play a story card by ID, e.g. 8 for the Enchanted Forest")
	storyCmd.Flags().Bool("json", false, "Print the final state as JSON")
}

// runStoryLoop drives f from in until the story completes. End of input
// quits quietly.
func runStoryLoop(ctx context.Context, f *story.Flow, theme string, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	var reported error
	readLine := func(prompt string) (string, bool) {
		fmt.Fprint(out, prompt)
		if !sc.Scan() {
			fmt.Fprintln(out)
			return "", false
		}
		return strings.TrimSpace(sc.Text()), true
	}

	for {
		st := f.State()
		switch st.Phase {
		case story.PhaseSelectingTheme:
			if st.Err != nil && st.Err != reported {
				reported = st.Err
				fmt.Fprintf(out, "The story got lost: %v\n", st.Err)
				if f.Locked() {
					ans, ok := readLine("Try again? [Y/n] ")
					if !ok || strings.HasPrefix(strings.ToLower(ans), "n") {
						return nil
					}
				}
			}

			t := theme
			theme = ""
			if t == "" && !f.Locked() {
				var ok bool
				if t, ok = readLine("Theme: "); !ok {
					return nil
				}
			}
			call, err := f.Start(t)
			if err != nil {
				return err
			}
			if call == nil {
				continue
			}
			fmt.Fprintf(out, "Weaving a story in %s...\n", f.Theme())
			f.Resolve(ctx, call)

		case story.PhaseAwaitingAnswer:
			q, _ := f.Current()
			answered, total := f.Progress()
			fmt.Fprintf(out, "\n[%d/%d] %s\n", answered+1, total, q.Scenario)
			for i, o := range q.Options {
				fmt.Fprintf(out, "  %d) %s\n", i+1, o.Label)
			}

			line, ok := readLine("> ")
			if !ok {
				return nil
			}
			n, err := strconv.Atoi(line)
			if err != nil {
				fmt.Fprintf(out, "Enter a number from 1 to %d.\n", len(q.Options))
				continue
			}
			call, err := f.Answer(n - 1)
			if errors.Is(err, story.ErrInvalidChoice) {
				fmt.Fprintf(out, "Enter a number from 1 to %d.\n", len(q.Options))
				continue
			}
			if err != nil {
				return err
			}
			if call != nil {
				fmt.Fprintln(out, "\nReading your choices...")
				f.Resolve(ctx, call)
			}

		case story.PhaseCompleted:
			printResult(out, st)
			return nil

		case story.PhaseFailed:
			return errors.New(st.Reason)

		default:
			// Pending phases never persist here since calls resolve inline.
			return fmt.Errorf("unexpected story phase %s", st.Phase)
		}
	}
}

func printResult(out io.Writer, st story.State) {
	r := st.Result
	sep := strings.Repeat("─", 40)
	fmt.Fprintln(out)
	fmt.Fprintln(out, sep)
	fmt.Fprintf(out, "✦ %s ✦\n", r.Title)
	fmt.Fprintln(out, sep)
	fmt.Fprintln(out, r.Description)
	if len(r.Traits) > 0 {
		fmt.Fprintf(out, "Traits:     %s\n", strings.Join(r.Traits, ", "))
	}
	if r.CompatibleWith != "" {
		fmt.Fprintf(out, "Best match: %s\n", r.CompatibleWith)
	}
	if st.Degraded {
		fmt.Fprintln(out, "(default reading, the oracle was unavailable)")
	}
}
