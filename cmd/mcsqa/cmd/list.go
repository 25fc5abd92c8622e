package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/materials-commons/mcsqa/internal/store"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the records in the store.",
	Run:   cliCmdList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func cliCmdList(cmd *cobra.Command, args []string) {
	ctx, cancel := signalContext()
	defer cancel()

	s, closeStore := openStore(ctx)
	defer closeStore()

	names, err := s.ListRegionNames(ctx)
	if err != nil {
		fmt.Println("Unable to list records:", err)
		return
	}

	locator, hasLocation := s.(store.Locator)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Record", "Location"})
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	for _, name := range names {
		if name == cfg.Template {
			continue
		}
		location := ""
		if hasLocation {
			location = locator.Location(store.Region{Name: name})
		}
		table.Append([]string{name, location})
	}
	table.Render()
}
