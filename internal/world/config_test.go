package world

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPropensities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	data := `1:
  imports: {salt: 2}
  exports: {wood: 3, grain: 2}
2:
  exports: {fish: 4}
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write profiles: %v", err)
	}

	profiles, err := LoadPropensities(path)
	if err != nil {
		t.Fatalf("LoadPropensities: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("profiles = %d, want 2", len(profiles))
	}
	if profiles[1].Exports["wood"] != 3 || profiles[1].Imports["salt"] != 2 {
		t.Fatalf("profile 1 = %+v", profiles[1])
	}
	if profiles[2].Imports != nil && len(profiles[2].Imports) != 0 {
		t.Fatalf("profile 2 imports = %+v, want none", profiles[2].Imports)
	}

	w := New(nil, nil)
	w.ApplyPropensities(profiles)
	if p, ok := w.Propensity(2); !ok || p.Exports["fish"] != 4 {
		t.Fatalf("applied profile lost: %+v ok=%v", p, ok)
	}
}
