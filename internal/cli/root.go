package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"docqa/config"
)

var (
	cfgFile    string
	cfg        *config.Config
	collection string
)

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Ingest a document and answer questions about it",
	Long: `docqa splits a document into paragraph chunks, embeds each chunk, and
stores the vectors in a named collection. Questions are answered by
embedding the question, retrieving the closest chunks, and asking a
language model with those chunks as context.

Example usage:
  docqa ingest story.txt          # Populate the collection
  docqa ask -q "What appeared?"   # Answer from the ingested document`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			wd, werr := os.Getwd()
			if werr != nil {
				return fmt.Errorf("failed to get working directory: %w", werr)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if collection != "" {
			cfg.Store.Collection = collection
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./docqa.yaml)")
	rootCmd.PersistentFlags().StringVarP(&collection, "collection", "c", "", "vector store collection (overrides config)")
}

func GetConfig() *config.Config {
	return cfg
}
