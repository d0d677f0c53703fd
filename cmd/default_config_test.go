package cmd

import (
	"os"
	"testing"
)

// presetsTestPath resolves defaults.yaml whether tests run from the repo
// root or from cmd/.
func presetsTestPath(t *testing.T) string {
	t.Helper()
	path := "defaults.yaml"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		path = "../defaults.yaml"
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Skip("defaults.yaml not found, skipping integration test")
		}
	}
	return path
}

func TestGetDiseasePreset_KnownPreset(t *testing.T) {
	path := presetsTestPath(t)

	// GIVEN a known preset in defaults.yaml
	preset, ok := GetDiseasePreset(path, "baseline")

	// THEN it resolves with the documented rates
	if !ok {
		t.Fatal("expected baseline preset to exist")
	}
	if preset.Beta != 0.2 {
		t.Errorf("baseline beta = %v, want 0.2", preset.Beta)
	}
	if preset.Gamma != 0.1 {
		t.Errorf("baseline gamma = %v, want 0.1", preset.Gamma)
	}
	if preset.Dt != 1.0 {
		t.Errorf("baseline dt = %v, want 1.0", preset.Dt)
	}
}

func TestGetDiseasePreset_AllPresetsValid(t *testing.T) {
	path := presetsTestPath(t)
	cfg := loadPresetsConfig(path)

	if len(cfg.Diseases) == 0 {
		t.Fatal("expected at least one disease preset")
	}
	for name, p := range cfg.Diseases {
		if p.Beta < 0 || p.Gamma < 0 || p.Dt <= 0 {
			t.Errorf("preset %q has invalid rates: beta=%v gamma=%v dt=%v", name, p.Beta, p.Gamma, p.Dt)
		}
	}
}

func TestGetDiseasePreset_Unknown(t *testing.T) {
	path := presetsTestPath(t)

	if _, ok := GetDiseasePreset(path, "no-such-disease"); ok {
		t.Error("expected lookup of unknown preset to fail")
	}
}
