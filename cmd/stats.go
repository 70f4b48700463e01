package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"facepairs/internal/dataset"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a census of the dataset directory",
	Long: `Scan the dataset directory and print how many images and persons it
contains, the theoretical pair counts and a histogram of persons by
image count. No pairs are sampled.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().String("dir", "", "Dataset directory (default from DATASET_DIR)")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := mustGetString(cmd, "dir")
	if dir == "" {
		dir = cfg.Dataset.Dir
	}

	stats, err := dataset.Census(dir)
	if err != nil {
		return err
	}
	stats.ReportCensus(os.Stdout)
	return nil
}
