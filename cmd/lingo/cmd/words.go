package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/lingo-backend/internal/app"
	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/internal/service/acquisition"
	"github.com/heartmarshall/lingo-backend/internal/service/dictionary"
)

var (
	wordTopic  string
	listMine   bool
	clearForce bool
)

var addCmd = &cobra.Command{
	Use:   "add <word>",
	Short: "Look a word up in every source and store it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headword := strings.Join(args, " ")
		return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
			res, err := svc.Acquisition.AddWord(ctx, acquisition.AddWordInput{Headword: headword, Topic: wordTopic})
			if errors.Is(err, domain.ErrInvalidHeadword) {
				return fmt.Errorf("%q does not look like a word", headword)
			}
			if err != nil {
				return err
			}
			for _, e := range res.Entries {
				printEntry(cmd, e)
			}
			printInsert(cmd, res.InsertResult)
			return nil
		})
	},
}

var bulkCmd = &cobra.Command{
	Use:   "bulk [word...]",
	Short: "Acquire many words, one per argument or one per stdin line",
	RunE: func(cmd *cobra.Command, args []string) error {
		headwords := args
		if len(headwords) == 0 {
			var err error
			if headwords, err = readLines(cmd); err != nil {
				return err
			}
		}
		return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
			res, err := svc.Acquisition.AddWords(ctx, acquisition.AddWordsInput{Headwords: headwords, Topic: wordTopic})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(res.Invalid) > 0 {
				fmt.Fprintf(out, "not words: %s\n", strings.Join(res.Invalid, ", "))
			}
			if len(res.NotFound) > 0 {
				fmt.Fprintf(out, "not found: %s\n", strings.Join(res.NotFound, ", "))
			}
			printInsert(cmd, res.InsertResult)
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog as topic | level | title",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
			res, err := svc.Dictionary.ListEntries(ctx, dictionary.ListInput{Topic: wordTopic, Mine: listMine})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range res.Entries {
				fmt.Fprintf(out, "%s | %s | %s\n", e.TopicOrDefault(), e.Level, e.Title())
			}
			fmt.Fprintf(out, "%d of %d\n", len(res.Entries), res.TotalCount)
			return nil
		})
	},
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Serve one unseen word to the learner given by --as",
	RunE: func(cmd *cobra.Command, args []string) error {
		if asLearner == "" {
			return errors.New("pick needs --as <learner id>")
		}
		return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
			e, err := svc.Selector.Pick(ctx)
			if errors.Is(err, domain.ErrNoneAvailable) {
				fmt.Fprintln(cmd.OutOrStdout(), "no words match the preferences")
				return nil
			}
			if err != nil {
				return err
			}
			printEntry(cmd, e)
			return nil
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete catalog entries (optionally one topic) or, with --as, the learner's words",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearForce {
			return errors.New("clear deletes entries permanently; pass --force")
		}
		return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
			var (
				n   int64
				err error
			)
			if asLearner != "" {
				n, err = svc.Dictionary.ClearMine(ctx)
			} else {
				n, err = svc.Dictionary.ClearCatalog(ctx, wordTopic)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d entries\n", n)
			return nil
		})
	},
}

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Print the daily batch of every learner with daily words enabled",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
			learners, err := svc.Learner.DailyRecipients(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, l := range learners {
				batch, err := svc.Selector.PickDaily(ctx, l.ID)
				if errors.Is(err, domain.ErrNoneAvailable) {
					fmt.Fprintf(out, "# %s (%s): nothing to send\n", l.Username, l.Daily.Time)
					continue
				}
				if err != nil {
					return fmt.Errorf("daily for %s: %w", l.ID, err)
				}
				fmt.Fprintf(out, "# %s (%s)\n", l.Username, l.Daily.Time)
				for _, e := range batch {
					printEntry(cmd, e)
				}
			}
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{addCmd, bulkCmd, listCmd, clearCmd} {
		c.Flags().StringVar(&wordTopic, "topic", "", "topic")
	}
	listCmd.Flags().BoolVar(&listMine, "mine", false, "list the personal words of the learner given by --as")
	clearCmd.Flags().BoolVar(&clearForce, "force", false, "confirm deletion")
}

func readLines(cmd *cobra.Command) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		if l := strings.TrimSpace(sc.Text()); l != "" {
			lines = append(lines, l)
		}
	}
	return lines, sc.Err()
}
