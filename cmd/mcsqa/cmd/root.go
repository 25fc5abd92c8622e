package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/materials-commons/mcsqa/internal/config"
	"github.com/materials-commons/mcsqa/internal/spreadsheet"
	"github.com/materials-commons/mcsqa/internal/store"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mcsqa",
	Short: "Records SQA study submissions and computes their acceptance statistics.",
	Long: `mcsqa validates SQA precision, accuracy and lower limit detection studies and
writes each one as a new record, a copy of the template worksheet, in the
configured store along with its R², sensitivity and specificity.`,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mcsqa.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every step of a submission")
	rootCmd.PersistentFlags().String("driver", "", "Store driver: xlsx, sqlite, remote or memory")
	rootCmd.PersistentFlags().String("store-path", "", "Workbook or database file for the xlsx and sqlite drivers")
	rootCmd.PersistentFlags().String("template", "", "Name of the template region records are copied from")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("store.driver", rootCmd.PersistentFlags().Lookup("driver"))
	_ = viper.BindPFlag("store.path", rootCmd.PersistentFlags().Lookup("store-path"))
	_ = viper.BindPFlag("template", rootCmd.PersistentFlags().Lookup("template"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	c, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		fmt.Println("Invalid configuration")
		printErrors(err)
		os.Exit(1)
	}
	cfg = c

	if len(cfg.BlankKeywords) > 0 {
		spreadsheet.SetBlankKeywords(cfg.BlankKeywords...)
	}

	if logger, err = newLogger(cfg.Verbose); err != nil {
		fmt.Println("error", err)
		os.Exit(1)
	}
	logger.Debug("configuration loaded",
		zap.String("config", viper.ConfigFileUsed()),
		zap.String("driver", cfg.Store.Driver),
		zap.String("template", cfg.Template))
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zc.Build()
}

// openStore opens the configured store or exits.
func openStore(ctx context.Context) (store.Store, func() error) {
	s, closeStore, err := cfg.OpenStore(ctx)
	if err != nil {
		fmt.Println("Unable to open store:", err)
		os.Exit(1)
	}
	return s, closeStore
}

// signalContext is cancelled on an interrupt. A submission that has already
// created its record still finishes.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// printErrors prints each error in a multierror on its own line.
func printErrors(err error) {
	if merr, ok := err.(*multierror.Error); ok {
		for _, e := range merr.Errors {
			fmt.Println(" ", e)
		}
		return
	}
	fmt.Println(" ", err)
}
