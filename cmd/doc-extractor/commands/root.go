// Package commands wires the doc-extractor CLI command tree.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "doc-extractor",
	Short: "Extract structured data from bills, receipts, and forms",
	Long: `doc-extractor sends a document image to a hosted multimodal model with a
fixed extraction prompt and prints whatever JSON or text the model returns.
Accepts jpg, jpeg, png, and pdf files, or a remote image URL.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
