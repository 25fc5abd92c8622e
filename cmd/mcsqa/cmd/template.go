package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/materials-commons/mcsqa/internal/store/xlsx"
)

// templateCmd represents the template command
var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Creates a workbook holding a blank template worksheet.",
	Long: `The template command writes a new workbook with a single labelled template
worksheet, ready to be used as the store for the xlsx driver.`,
	Run: cliCmdTemplate,
}

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.Flags().StringP("output", "o", "", "Path of the workbook to create")
	templateCmd.Flags().Bool("force", false, "Overwrite the workbook if it exists")
}

func cliCmdTemplate(cmd *cobra.Command, args []string) {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		fmt.Println("error", err)
		os.Exit(1)
	}
	if output == "" {
		output = cfg.Store.Path
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		fmt.Println("error", err)
		os.Exit(1)
	}

	if _, err := os.Stat(output); err == nil && !force {
		fmt.Printf("%s already exists, use --force to replace it\n", output)
		os.Exit(1)
	}

	if err := xlsx.CreateTemplate(output, cfg.Template); err != nil {
		fmt.Println("Unable to create template:", err)
		os.Exit(1)
	}

	fmt.Printf("Created %s with template worksheet '%s'\n", output, cfg.Template)
}
