package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/lingo-backend/internal/app"
	"github.com/heartmarshall/lingo-backend/internal/service/dictionary"
)

var (
	transferFormat string
	exportTopic    string
)

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Import manual entries from pipe lines or a YAML document",
	Long: "Each pipe line is: topic | level | word | definition | example | pronunciation.\n" +
		"A YAML document is a list of records with the same fields. The format is taken\n" +
		"from --format or from the file extension.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		format := transferFormat
		if format == "" {
			format = formatFromPath(args[0])
		}

		return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
			res, err := svc.Dictionary.ImportEntries(ctx, dictionary.ImportInput{Format: format, Data: string(data)})
			if err != nil {
				return err
			}
			for _, e := range res.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "line %d: %s (%q)\n", e.LineNumber, e.Reason, e.Text)
			}
			printInsert(cmd, res.InsertResult)
			return nil
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the public catalog in an import-compatible form",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *app.Services) error {
			res, err := svc.Dictionary.ExportEntries(ctx, exportTopic)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch transferFormat {
			case dictionary.FormatYAML:
				b, err := dictionary.MarshalYAML(res.Items)
				if err != nil {
					return err
				}
				_, err = out.Write(b)
				return err
			case dictionary.FormatPipe:
				for _, r := range res.Items {
					fmt.Fprintln(out, strings.Join([]string{r.Topic, r.Level, r.Word, r.Definition, r.Example, r.Pronunciation}, " | "))
				}
				return nil
			default:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res.Items)
			}
		})
	},
}

func init() {
	importCmd.Flags().StringVar(&transferFormat, "format", "", "pipe or yaml")
	exportCmd.Flags().StringVar(&transferFormat, "format", dictionary.FormatYAML, "yaml, pipe or json")
	exportCmd.Flags().StringVar(&exportTopic, "topic", "", "only this topic")
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return dictionary.FormatYAML
	default:
		return dictionary.FormatPipe
	}
}
