package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Dataset    DatasetConfig    `yaml:"dataset"`
	Sampling   SamplingConfig   `yaml:"sampling"`
	Checkpoint CheckpointConfig `yaml:"checkpoint"`
}

type DatasetConfig struct {
	Dir      string `yaml:"dir"`      // root directory of the LFW faces
	Height   int    `yaml:"height"`   // target image height after resize
	Width    int    `yaml:"width"`    // target image width after resize
	Channels int    `yaml:"channels"` // 1 = grayscale, 3 = color
}

type SamplingConfig struct {
	TrainPairs int   `yaml:"train_pairs"`
	ValPairs   int   `yaml:"val_pairs"`
	TestPairs  int   `yaml:"test_pairs"`
	Seed       int64 `yaml:"seed"` // 0 means non-reproducible
}

type CheckpointConfig struct {
	WeightsDir string `yaml:"weights_dir"`
	// HistoryCSV is a path template; {identifier} expands to the run id.
	HistoryCSV string `yaml:"history_csv"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envInt64 is envInt for 64-bit values; any value parses, including zero.
func envInt64(key string, defaultVal int64) int64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// Load builds the configuration from environment variables with defaults
// matching the grayscaled-and-cropped LFW setup.
func Load() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Dir:      os.Getenv("DATASET_DIR"),
			Height:   envInt("IMAGE_HEIGHT", 64),
			Width:    envInt("IMAGE_WIDTH", 64),
			Channels: envInt("IMAGE_CHANNELS", 1),
		},
		Sampling: SamplingConfig{
			TrainPairs: envInt("TRAIN_PAIRS", 20000),
			ValPairs:   envInt("VAL_PAIRS", 256),
			TestPairs:  envInt("TEST_PAIRS", 0),
			Seed:       envInt64("SAMPLE_SEED", 0),
		},
		Checkpoint: CheckpointConfig{
			WeightsDir: envString("WEIGHTS_DIR", "experiments/weights"),
			HistoryCSV: envString("HISTORY_CSV", "experiments/{identifier}.history.csv"),
		},
	}
}

// LoadFile reads environment configuration first and overlays it with the
// values set in a YAML file, so a config file wins over the environment.
func LoadFile(path string) (*Config, error) {
	cfg := Load()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	return cfg, nil
}
