package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/materials-commons/mcsqa/internal/notify"
	"github.com/materials-commons/mcsqa/internal/spreadsheet"
	"github.com/materials-commons/mcsqa/internal/spreadsheet/processor"
	"github.com/materials-commons/mcsqa/internal/store"
)

// submitCmd represents the submit command
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Validates the given submission(s) and writes each one as a new record.",
	Long: `The submit command validates each payload (JSON, or YAML for .yaml/.yml files)
and creates a record for it in the store. Payloads are submitted in the order
given. If any payload fails validation nothing is submitted. A record either
ends up complete in the store or, if writing it fails part way, is removed
again.`,
	Run: cliCmdSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().StringP("files", "f", "", "Comma separated list of submission payloads")
	submitCmd.Flags().StringP("email", "e", "", "Print the notification for this address (defaults to the payload's emailTo)")
}

func cliCmdSubmit(cmd *cobra.Command, args []string) {
	files, err := cmd.Flags().GetString("files")
	if err != nil {
		fmt.Println("error", err)
		os.Exit(1)
	}

	email, err := cmd.Flags().GetString("email")
	if err != nil {
		fmt.Println("error", err)
		os.Exit(1)
	}

	payloads, err := spreadsheet.LoadSubmissions(strings.Split(files, ","))
	if err != nil {
		fmt.Println("Loading submissions failed")
		printErrors(err)
		os.Exit(1)
	}

	ctx, cancel := signalContext()
	defer cancel()

	s, closeStore := openStore(ctx)
	writer := processor.NewWriter(s, cfg.Template, logger)
	displayer := processor.NewDisplayer(os.Stdout)

	failed := 0
	for _, payload := range payloads {
		fmt.Println("Submitting", payload.Path)
		receipt, err := writer.Submit(ctx, payload.Submission)
		displayer.Receipt(receipt)
		if err != nil {
			fmt.Println(" ", err)
			failed++
			continue
		}

		recipient := email
		if recipient == "" {
			recipient = receipt.Submission.EmailTo
		}
		if recipient != "" {
			printNotification(s, receipt, recipient)
		}
	}

	if err := closeStore(); err != nil {
		fmt.Println("error closing store", err)
	}

	if failed > 0 {
		fmt.Printf("%d of %d submissions failed\n", failed, len(payloads))
		os.Exit(1)
	}
}

func printNotification(s store.Store, receipt *processor.Receipt, recipient string) {
	summary := notify.Summary{
		RecordKey:   receipt.Key,
		SubmittedAt: receipt.SubmittedAt,
		Recipient:   recipient,
	}
	if locator, ok := s.(store.Locator); ok {
		summary.Location = locator.Location(receipt.Region)
	}

	to, err := summary.Recipients()
	if err != nil {
		fmt.Println("  Not sending notification:", err)
		return
	}

	subject, body := summary.Message()
	fmt.Println()
	fmt.Printf("From: %s\n", notify.Sender)
	fmt.Printf("To: %s\n", strings.Join(to, ", "))
	fmt.Printf("Subject: %s\n\n", subject)
	fmt.Println(body)
	fmt.Println()
}
