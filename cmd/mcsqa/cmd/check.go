package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/materials-commons/mcsqa/internal/spreadsheet"
	"github.com/materials-commons/mcsqa/internal/spreadsheet/stats"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Checks the given submission(s) for errors and reports the errors. No records are written.",
	Long: `The check command validates the given submission payloads and reports every
problem found. For payloads that pass it shows the record name they would be
written under and the statistics that would be computed. The store is not
touched, so a payload that checks clean can still be a duplicate.`,
	Run: cliCmdCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringP("files", "f", "", "Comma separated list of submission payloads")
}

func cliCmdCheck(cmd *cobra.Command, args []string) {
	files, err := cmd.Flags().GetString("files")
	if err != nil {
		fmt.Print("error", err)
		os.Exit(1)
	}

	payloads, err := spreadsheet.LoadSubmissions(strings.Split(files, ","))
	if err != nil {
		fmt.Println("Loading submissions failed")
		printErrors(err)
		os.Exit(1)
	}

	failed := false
	for _, payload := range payloads {
		sub, err := spreadsheet.Normalize(payload.Submission)
		if err != nil {
			// LoadSubmissions has already normalized it once.
			fmt.Println(payload.Path, err)
			failed = true
			continue
		}

		key, err := spreadsheet.NewRecordKey(sub)
		if err != nil {
			fmt.Printf("%s: %s\n", payload.Path, err)
			failed = true
			continue
		}

		derived := stats.Derive(sub)
		fmt.Printf("%s: ok, record %s\n", payload.Path, key)
		fmt.Printf("  Concentration %s\n", stats.FormatR2(derived.ConcentrationR2))
		fmt.Printf("  Motility %s\n", stats.FormatR2(derived.MotilityR2))
		fmt.Printf("  Sensitivity %s\n", derived.Sensitivity)
	}

	if failed {
		os.Exit(1)
	}
}
