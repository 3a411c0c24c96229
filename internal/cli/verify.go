package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/afriquesports/factsheet/internal/model"
	"github.com/afriquesports/factsheet/internal/ranking"
)

var (
	verifySheet   string
	verifyContent string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check generated text against a sheet's locked ranking",
	Long: `Check that generated article text respects the locked ranking of an
exported FactSheet. Exits non-zero when the text contradicts the
locked order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if verifySheet == "" || verifyContent == "" {
			return fmt.Errorf("--sheet and --content are required")
		}

		sheetData, err := os.ReadFile(verifySheet)
		if err != nil {
			return fmt.Errorf("read sheet: %w", err)
		}
		sheet, err := model.FromJSON(sheetData)
		if err != nil {
			return err
		}

		content, err := os.ReadFile(verifyContent)
		if err != nil {
			return fmt.Errorf("read content: %w", err)
		}

		result := ranking.VerifyOrder(sheet, string(content))
		for _, rank := range result.Unverified {
			fmt.Fprintf(os.Stderr, "rank %d: ambiguous, could not verify\n", rank)
		}
		if !result.Valid {
			for _, msg := range result.Errors {
				fmt.Fprintln(os.Stderr, msg)
			}
			return fmt.Errorf("content violates locked ranking")
		}

		fmt.Println("ranking respected")
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifySheet, "sheet", "", "FactSheet JSON file (required)")
	verifyCmd.Flags().StringVar(&verifyContent, "content", "", "generated article file (required)")
	rootCmd.AddCommand(verifyCmd)
}
