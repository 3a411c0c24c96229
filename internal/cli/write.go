package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/afriquesports/factsheet/internal/model"
	"github.com/afriquesports/factsheet/internal/quality"
	"github.com/afriquesports/factsheet/internal/writer"
)

var (
	writeSheet string
	writeOut   string
	writeModel string
)

// writeCmd represents the write command
var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Generate article text from a built FactSheet",
	Long: `Generate article text from an exported FactSheet.

The sheet must have passed quality validation. Output that reorders a
locked ranking is rejected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if writeSheet == "" {
			return fmt.Errorf("--sheet is required")
		}

		data, err := os.ReadFile(writeSheet)
		if err != nil {
			return fmt.Errorf("read sheet: %w", err)
		}
		sheet, err := model.FromJSON(data)
		if err != nil {
			return err
		}
		if !quality.IsReadyForGeneration(sheet) {
			return fmt.Errorf("sheet %s failed quality validation, refusing to generate", sheet.Meta.ID)
		}

		cfg := loadConfig()
		provider, err := writer.NewOpenAIProvider(cfg.LLM)
		if err != nil {
			return err
		}

		ctx := contextWithSignals()
		resp, err := provider.Generate(ctx, writer.GenerateRequest{
			Sheet: sheet,
			Model: writeModel,
		})
		if err != nil {
			return err
		}

		if writeOut == "" || writeOut == "-" {
			fmt.Println(resp.Content)
		} else if err := os.WriteFile(writeOut, []byte(resp.Content), 0644); err != nil {
			return fmt.Errorf("write article: %w", err)
		}

		fmt.Fprintf(os.Stderr, "Generated with %s (%d tokens)\n", resp.Model, resp.TokensUsed)
		return nil
	},
}

func init() {
	writeCmd.Flags().StringVar(&writeSheet, "sheet", "", "FactSheet JSON file (required)")
	writeCmd.Flags().StringVarP(&writeOut, "out", "o", "", "output file (default stdout)")
	writeCmd.Flags().StringVar(&writeModel, "model", "", "model override")
	rootCmd.AddCommand(writeCmd)
}
