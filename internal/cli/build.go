package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/afriquesports/factsheet/internal/builder"
	"github.com/afriquesports/factsheet/internal/model"
	"github.com/afriquesports/factsheet/internal/quality"
)

var (
	buildTitle    string
	buildPlayers  []string
	buildTeams    []string
	buildSize     int
	buildPosition []string
	buildLanguage string
	buildTopic    string
	buildOut      string
	buildDebug    bool
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a FactSheet",
	Long: `Build a validated FactSheet for a content request.

The pipeline resolves entities, collects verified facts, gathers news
evidence, computes the ranking where applicable and runs the quality
battery. The resulting sheet is written as JSON.`,
}

var buildRankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "Build a FactSheet for a ranking post",
	Example: `  factsheet build ranking \
    --title "Top 5 milieux africains 2026" \
    --players "Pedri,Bellingham,Camavinga,Tchouameni,Valverde" \
    --size 5 --position midfield --out sheet.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(model.PostRanking)
	},
}

var buildNewsCmd = &cobra.Command{
	Use:   "news",
	Short: "Build a FactSheet for a news post",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(model.PostNews)
	},
}

func runBuild(postType model.PostType) error {
	if buildTitle == "" {
		return fmt.Errorf("--title is required")
	}

	log := newLogger()
	defer func() { _ = log.Sync() }()

	cfg := loadConfig()
	b, err := newBuilder(cfg, log)
	if err != nil {
		return err
	}

	req := builder.Request{
		Title:          buildTitle,
		PlayerNames:    splitNames(buildPlayers),
		TeamNames:      splitNames(buildTeams),
		RankingSize:    buildSize,
		PositionFilter: buildPosition,
		Language:       buildLanguage,
		Topic:          buildTopic,
	}

	ctx := contextWithSignals()
	var sheet *model.FactSheet
	switch postType {
	case model.PostRanking:
		sheet, err = b.BuildRanking(ctx, req)
	default:
		sheet, err = b.BuildNews(ctx, req)
	}
	if err != nil {
		return err
	}

	if buildDebug {
		fmt.Fprintln(os.Stderr, builder.DebugString(sheet))
	}

	data, err := sheet.ToJSON()
	if err != nil {
		return err
	}
	if buildOut == "" || buildOut == "-" {
		fmt.Println(string(data))
	} else {
		if err := os.WriteFile(buildOut, data, 0644); err != nil {
			return fmt.Errorf("write sheet: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Sheet %s written to %s (status: %s)\n",
			sheet.Meta.ID, buildOut, sheet.Quality.ValidationStatus)
	}

	if !quality.IsReadyForGeneration(sheet) {
		fmt.Fprintln(os.Stderr, quality.FormatReport(sheet))
		return fmt.Errorf("factsheet failed quality validation")
	}
	return nil
}

// splitNames accepts both repeated flags and comma-separated lists.
func splitNames(values []string) []string {
	var out []string
	for _, value := range values {
		for _, name := range strings.Split(value, ",") {
			if name = strings.TrimSpace(name); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

func init() {
	for _, cmd := range []*cobra.Command{buildRankingCmd, buildNewsCmd} {
		cmd.Flags().StringVar(&buildTitle, "title", "", "content title (required)")
		cmd.Flags().StringSliceVar(&buildPlayers, "players", nil, "player names")
		cmd.Flags().StringSliceVar(&buildTeams, "teams", nil, "team names")
		cmd.Flags().StringVar(&buildLanguage, "language", "", "output language (default fr-FR)")
		cmd.Flags().StringVar(&buildTopic, "topic", "", "evidence topic query (default: title)")
		cmd.Flags().StringVarP(&buildOut, "out", "o", "", "output file (default stdout)")
		cmd.Flags().BoolVar(&buildDebug, "debug", false, "print the full sheet to stderr")
	}
	buildRankingCmd.Flags().IntVar(&buildSize, "size", 0, "ranking length (default from config)")
	buildRankingCmd.Flags().StringSliceVar(&buildPosition, "position", nil, "position fragments to keep")

	buildCmd.AddCommand(buildRankingCmd)
	buildCmd.AddCommand(buildNewsCmd)
	rootCmd.AddCommand(buildCmd)
}
