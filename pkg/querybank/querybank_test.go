package querybank

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBuiltin(t *testing.T) {
	bank, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, profession := range []string{"couvreur", "plombier", "electricien", "default", "unknown-profession"} {
		queries := bank.QueriesFor(profession, "Paris")
		if len(queries) != QueriesPerProfession {
			t.Errorf("QueriesFor(%q) returned %d queries, want %d", profession, len(queries), QueriesPerProfession)
		}
	}
}

func TestQueriesForSubstitutesCity(t *testing.T) {
	bank, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	queries := bank.QueriesFor("couvreur", "Lyon")
	if queries[0] != "Quel est le meilleur couvreur à Lyon ?" {
		t.Errorf("QueriesFor(couvreur, Lyon)[0] = %q", queries[0])
	}
}

func TestQueriesForUnknownProfessionUsesDefault(t *testing.T) {
	bank, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	queries := bank.QueriesFor("paysagiste", "Nice")
	if queries[0] != "Meilleur paysagiste à Nice ?" {
		t.Errorf("QueriesFor(paysagiste, Nice)[0] = %q", queries[0])
	}
}

func TestNewRejectsWrongLength(t *testing.T) {
	_, err := New(map[string][]string{"default": {"only one"}}, nil)
	if err == nil {
		t.Fatal("New accepted a bank with the wrong number of templates")
	}
}

func TestNewRejectsMissingDefault(t *testing.T) {
	_, err := New(map[string][]string{"couvreur": {"a", "b", "c", "d", "e"}}, nil)
	if err == nil {
		t.Fatal("New accepted a bank with no \"default\" profession")
	}
}

func TestLoadOverridesFileEmptyPathIsNoOverrides(t *testing.T) {
	overrides, err := LoadOverridesFile("")
	if err != nil {
		t.Fatalf("LoadOverridesFile(\"\"): %v", err)
	}
	if overrides != nil {
		t.Errorf("overrides = %v, want nil", overrides)
	}
}

func TestLoadOverridesFileExpandsEnvAndParses(t *testing.T) {
	t.Setenv("TEST_CITY_PLACEHOLDER", "Marseille")
	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.yaml")
	content := "couvreur:\n  - \"Meilleur couvreur a ${TEST_CITY_PLACEHOLDER} ?\"\n  - a\n  - b\n  - c\n  - d\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	overrides, err := LoadOverridesFile(path)
	if err != nil {
		t.Fatalf("LoadOverridesFile: %v", err)
	}
	if got := overrides["couvreur"][0]; got != "Meilleur couvreur a Marseille ?" {
		t.Errorf("overrides[couvreur][0] = %q", got)
	}

	bank, err := New(map[string][]string{"default": {"a", "b", "c", "d", "e"}}, overrides)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := bank.QueriesFor("couvreur", "ignored"); got[0] != "Meilleur couvreur a Marseille ?" {
		t.Errorf("QueriesFor[0] = %q", got[0])
	}
}

func TestOverridesWinOverBuiltin(t *testing.T) {
	bank, err := Load(map[string][]string{
		"couvreur": {"a", "b", "c", "d", "e"},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	queries := bank.QueriesFor("couvreur", "Paris")
	if queries[0] != "a" {
		t.Errorf("override did not win: queries[0] = %q", queries[0])
	}
}
