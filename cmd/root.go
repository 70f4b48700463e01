package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"facepairs/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "facepairs",
	Short: "Dataset tooling for face-verification experiments on LFW",
	Long: `facepairs prepares training data for a face-verification pipeline on
the Labeled Faces in the Wild dataset: it samples labeled image pairs
(same person / different person), converts them to numeric batches,
charts dataset skew and restores weights and history of earlier runs.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional YAML config file overriding the environment")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}

// loadConfig resolves the effective configuration for a command run.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFile(cfgFile)
	}
	return config.Load(), nil
}
