package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// DiseasePreset describes a named rate configuration in defaults.yaml.
type DiseasePreset struct {
	Beta  float64 `yaml:"beta"`
	Gamma float64 `yaml:"gamma"`
	Dt    float64 `yaml:"dt"`
	Notes string  `yaml:"notes,omitempty"`
}

// PresetsConfig represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type PresetsConfig struct {
	Version  string                   `yaml:"version"`
	Diseases map[string]DiseasePreset `yaml:"diseases"`
}

// loadPresetsConfig parses defaults.yaml into a PresetsConfig.
// Uses strict field checking so typos cause errors instead of silent zeros.
func loadPresetsConfig(path string) PresetsConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Fatalf("Failed to read presets file %s: %v", path, err)
	}
	var cfg PresetsConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		logrus.Fatalf("Failed to parse presets YAML: %v", err)
	}
	return cfg
}

// GetDiseasePreset looks up a named preset from the presets file.
func GetDiseasePreset(path, name string) (DiseasePreset, bool) {
	cfg := loadPresetsConfig(path)
	preset, ok := cfg.Diseases[name]
	return preset, ok
}

// presetsCmd lists the named disease presets available in the presets file.
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List available disease presets",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadPresetsConfig(presetsPath)
		names := make([]string, 0, len(cfg.Diseases))
		for name := range cfg.Diseases {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			p := cfg.Diseases[name]
			fmt.Printf("%-12s beta=%-8v gamma=%-8v dt=%-6v %s\n", name, p.Beta, p.Gamma, p.Dt, p.Notes)
		}
	},
}

func init() {
	presetsCmd.Flags().StringVar(&presetsPath, "presets", "defaults.yaml", "Path to the presets YAML")
}
