package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pbankaus/akviza/internal/model"
)

func TestLoadExceptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exceptions.yaml")
	content := `force_non_alcohol_exact:
  - ginger beer
force_non_alcohol_combined:
  - [tonic, water]
force_non_alcohol_contains:
  - kombucha
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := model.ClassifyConfig{
		ExceptionsFile:          path,
		ForceNonAlcoholContains: []string{"sirupas"},
	}
	loaded, err := LoadExceptions(cfg)
	if err != nil {
		t.Fatalf("LoadExceptions: %v", err)
	}

	if len(loaded.ForceNonAlcoholExact) != 1 || loaded.ForceNonAlcoholExact[0] != "ginger beer" {
		t.Errorf("exact = %v", loaded.ForceNonAlcoholExact)
	}
	if len(loaded.ForceNonAlcoholCombined) != 1 || len(loaded.ForceNonAlcoholCombined[0]) != 2 {
		t.Errorf("combined = %v", loaded.ForceNonAlcoholCombined)
	}
	// File entries append to the configured ones.
	if len(loaded.ForceNonAlcoholContains) != 2 {
		t.Errorf("contains = %v", loaded.ForceNonAlcoholContains)
	}
}

func TestLoadExceptionsMissingFile(t *testing.T) {
	cfg := model.ClassifyConfig{ExceptionsFile: filepath.Join(t.TempDir(), "absent.yaml")}
	loaded, err := LoadExceptions(cfg)
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if len(loaded.ForceNonAlcoholExact) != 0 {
		t.Errorf("unexpected exceptions: %v", loaded.ForceNonAlcoholExact)
	}
}

func TestLoadExceptionsEmptyPath(t *testing.T) {
	if _, err := LoadExceptions(model.ClassifyConfig{}); err != nil {
		t.Fatalf("empty path must not error: %v", err)
	}
}

func TestLoadExceptionsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("force_non_alcohol_exact: {not: [a, list"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadExceptions(model.ClassifyConfig{ExceptionsFile: path}); err == nil {
		t.Fatal("malformed yaml must error")
	}
}
