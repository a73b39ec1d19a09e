package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wondershelf/internal/activity"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Run one playful card and print the result",
}

// askRunner wraps an activity call with setup and output formatting.
func askRunner(run func(cmd *cobra.Command, svc *activity.Service, args []string) (any, string, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer rt.Close()

		v, text, err := run(cmd, rt.activities, args)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		return writeAnswer(cmd.OutOrStdout(), v, text, asJSON)
	}
}

func writeAnswer(w io.Writer, v any, text string, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

func fallbackNote(fallback bool) string {
	if fallback {
		return "\n(a classic, the oracle was unavailable)"
	}
	return ""
}

var askHoroscopeCmd = &cobra.Command{
	Use:   "horoscope <sign>",
	Short: "Today's horoscope for a zodiac sign, e.g. leo",
	Args:  cobra.ExactArgs(1),
	RunE: askRunner(func(cmd *cobra.Command, svc *activity.Service, args []string) (any, string, error) {
		h, err := svc.Horoscope(cmd.Context(), args[0])
		if err != nil {
			return nil, "", err
		}
		return h, fmt.Sprintf("%s\n%s%s", h.Sign.Name, h.Reading, fallbackNote(h.Fallback)), nil
	}),
}

var askLuckyColorCmd = &cobra.Command{
	Use:   "lucky-color",
	Short: "Today's lucky color",
	Args:  cobra.NoArgs,
	RunE: askRunner(func(cmd *cobra.Command, svc *activity.Service, _ []string) (any, string, error) {
		c, err := svc.LuckyColor(cmd.Context())
		if err != nil {
			return nil, "", err
		}
		return c, fmt.Sprintf("%s\n%s%s", c.Color, c.Reason, fallbackNote(c.Fallback)), nil
	}),
}

var askJokeCmd = &cobra.Command{
	Use:   "joke",
	Short: "A dad joke",
	Args:  cobra.NoArgs,
	RunE: askRunner(func(cmd *cobra.Command, svc *activity.Service, _ []string) (any, string, error) {
		j, err := svc.Joke(cmd.Context())
		if err != nil {
			return nil, "", err
		}
		return j, j.Text + fallbackNote(j.Fallback), nil
	}),
}

var askComplimentCmd = &cobra.Command{
	Use:   "compliment",
	Short: "A compliment",
	Args:  cobra.NoArgs,
	RunE: askRunner(func(cmd *cobra.Command, svc *activity.Service, _ []string) (any, string, error) {
		c, err := svc.Compliment(cmd.Context())
		if err != nil {
			return nil, "", err
		}
		return c, c.Text + fallbackNote(c.Fallback), nil
	}),
}

var askPsychTestCmd = &cobra.Command{
	Use:   "psych-test",
	Short: "A one-question psych test with every interpretation",
	Args:  cobra.NoArgs,
	RunE: askRunner(func(cmd *cobra.Command, svc *activity.Service, _ []string) (any, string, error) {
		pt, err := svc.PsychTest(cmd.Context())
		if err != nil {
			return nil, "", err
		}
		return pt, formatPsychTest(pt), nil
	}),
}

var askDecisionCmd = &cobra.Command{
	Use:   "decision <option-a> <option-b>",
	Short: "Let the oracle pick between two options",
	Args:  cobra.ExactArgs(2),
	RunE: askRunner(func(cmd *cobra.Command, svc *activity.Service, args []string) (any, string, error) {
		d, err := svc.Decide(cmd.Context(), args[0], args[1])
		if err != nil {
			return nil, "", err
		}
		return d, d.Verdict + fallbackNote(d.Fallback), nil
	}),
}

func formatPsychTest(pt activity.PsychTest) string {
	var b strings.Builder
	b.WriteString(pt.Question)
	b.WriteString("\n")
	for i, o := range pt.Options {
		fmt.Fprintf(&b, "\n  %d) %s\n     → %s", i+1, o.Text, o.Interpretation)
	}
	b.WriteString(fallbackNote(pt.Fallback))
	return b.String()
}

func init() {
	askCmd.PersistentFlags().Bool("json", false, "Print the result as JSON")

	askCmd.AddCommand(askHoroscopeCmd)
	askCmd.AddCommand(askLuckyColorCmd)
	askCmd.AddCommand(askJokeCmd)
	askCmd.AddCommand(askComplimentCmd)
	askCmd.AddCommand(askPsychTestCmd)
	askCmd.AddCommand(askDecisionCmd)
}
