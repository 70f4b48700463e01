package cmd

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"facepairs/internal/dataset"
	"facepairs/internal/imaging"
	"facepairs/internal/tensor"
)

var materializeCmd = &cobra.Command{
	Use:   "materialize <pairs.csv>",
	Short: "Convert a sampled pair listing into a numeric batch file",
	Long: `Load every image of a sampled split, resize to the configured shape
and write the stacked pixel array plus labels as a gob-encoded batch of
shape (N, 2, height, width, channels).

Example:
  facepairs materialize train.csv --out train.batch`,
	Args: cobra.ExactArgs(1),
	RunE: runMaterialize,
}

func init() {
	rootCmd.AddCommand(materializeCmd)

	materializeCmd.Flags().Int("height", 0, "Target height (default from IMAGE_HEIGHT)")
	materializeCmd.Flags().Int("width", 0, "Target width (default from IMAGE_WIDTH)")
	materializeCmd.Flags().Int("channels", 0, "Channel count, 1 or 3 (default from IMAGE_CHANNELS)")
	materializeCmd.Flags().String("out", "", "Output file (required)")
	materializeCmd.MarkFlagRequired("out")
}

func runMaterialize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	height := mustGetInt(cmd, "height")
	if height == 0 {
		height = cfg.Dataset.Height
	}
	width := mustGetInt(cmd, "width")
	if width == 0 {
		width = cfg.Dataset.Width
	}
	channels := mustGetInt(cmd, "channels")
	if channels == 0 {
		channels = cfg.Dataset.Channels
	}

	pairs, err := dataset.ReadPairsCSV(args[0])
	if err != nil {
		return err
	}
	loader, err := imaging.NewLoader(channels)
	if err != nil {
		return err
	}

	batch, err := tensor.Materialize(pairs, loader, height, width, tensor.Options{Progress: true})
	if err != nil {
		return err
	}

	out := mustGetString(cmd, "out")
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create batch file %q: %w", out, err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(batch); err != nil {
		return fmt.Errorf("failed to encode batch: %w", err)
	}

	fmt.Printf("Wrote batch of shape %v to %s\n", batch.Shape(), out)
	return nil
}
