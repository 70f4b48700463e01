package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"facepairs/internal/dataset"
	"facepairs/internal/skew"
)

var skewCmd = &cobra.Command{
	Use:   "skew",
	Short: "Render bar charts of per-person image counts per split",
	Long: `Sample train/validation/test splits (sizes from configuration) with
mutually exclusive images and render one bar chart per split showing
how many images of each person ended up in it. Tall uneven bars mean
a skewed split dominated by a few persons.

Example:
  facepairs skew --seed 42 --out skew.png`,
	RunE: runSkew,
}

func init() {
	rootCmd.AddCommand(skewCmd)

	skewCmd.Flags().String("dir", "", "Dataset directory (default from DATASET_DIR)")
	skewCmd.Flags().Int64("seed", 0, "Random seed, 0 picks one from the clock")
	skewCmd.Flags().Bool("all-pairs", false, "Count all pairs, not only same-person ones")
	skewCmd.Flags().Int("top", 250, "Show only the N persons with the highest counts")
	skewCmd.Flags().String("out", "skew.png", "PNG file to write")
}

func runSkew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := mustGetString(cmd, "dir")
	if dir == "" {
		dir = cfg.Dataset.Dir
	}
	seed := mustGetInt64(cmd, "seed")
	if seed == 0 {
		seed = cfg.Sampling.Seed
	}

	sizes := []struct {
		name string
		max  int
	}{
		{"Train", cfg.Sampling.TrainPairs},
		{"Validation", cfg.Sampling.ValPairs},
		{"Test", cfg.Sampling.TestPairs},
	}

	var splits []skew.Split
	var exclude []dataset.Pair
	for i, s := range sizes {
		if s.max == 0 {
			continue
		}
		pairs, _, err := dataset.Sample(dataset.Config{
			Dir:         dir,
			MaxPairs:    s.max,
			IgnoreOrder: true,
			Exclude:     exclude,
			Seed:        seed + int64(i), // distinct but reproducible per split
		})
		if err != nil {
			return fmt.Errorf("failed to sample %s split: %w", s.name, err)
		}
		splits = append(splits, skew.Split{Name: s.name, Pairs: pairs})
		exclude = append(exclude, pairs...)
	}

	opts := skew.DefaultOptions(mustGetString(cmd, "out"))
	opts.OnlySamePerson = !mustGetBool(cmd, "all-pairs")
	opts.TopN = mustGetInt(cmd, "top")
	if err := skew.Render(splits, opts); err != nil {
		return err
	}
	fmt.Printf("Wrote skew chart for %d splits to %s\n", len(splits), opts.OutPath)
	return nil
}
