package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/materials-commons/mcsqa/internal/spreadsheet"
	"github.com/materials-commons/mcsqa/internal/spreadsheet/processor"
	"github.com/materials-commons/mcsqa/internal/store"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Shows a record read back from the store.",
	Long: `The show command reads a record back from the store using the worksheet
layout and prints each group of samples as a table followed by the statistics
stored with the record.`,
	Run: cliCmdShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringP("record", "r", "", "Name of the record to show")
}

func cliCmdShow(cmd *cobra.Command, args []string) {
	name, err := cmd.Flags().GetString("record")
	if err != nil {
		fmt.Println("error", err)
		os.Exit(1)
	}
	if name == "" {
		fmt.Println("A record name is required (-r)")
		os.Exit(1)
	}

	ctx, cancel := signalContext()
	defer cancel()

	s, closeStore := openStore(ctx)
	defer closeStore()

	reader, ok := s.(store.Reader)
	if !ok {
		fmt.Printf("The %s store can't read records back\n", cfg.Store.Driver)
		return
	}

	record, err := spreadsheet.ReadBack(ctx, reader, store.Region{Name: name}, nil)
	if err != nil {
		fmt.Println("Unable to read record:", err)
		return
	}

	processor.NewDisplayer(os.Stdout).Record(record)
}
