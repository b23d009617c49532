package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnvOverrides removes every environment variable Load consults so tests
// see only what they set themselves.
func clearEnvOverrides() {
	os.Unsetenv("PIZZETTA_DATA_DIR")
	os.Unsetenv("PIZZETTA_ORDERS_FILE")
	os.Unsetenv("PIZZETTA_SQLITE_PATH")
	os.Unsetenv("PIZZETTA_ARCHIVE_DIR")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("LOG_FORMAT")
}

func writeTempConfig(t *testing.T, yamlContent string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "pizzetta-config-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	if _, err := tmpFile.Write([]byte(yamlContent)); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	if err := tmpFile.Close(); err != nil {
		t.Fatalf("failed to close temp file: %v", err)
	}
	return tmpFile.Name()
}

func TestLoadFromFile(t *testing.T) {
	clearEnvOverrides()

	path := writeTempConfig(t, `
storage:
  data_dir: "/tmp/pizzetta/data"
  orders_file: "shop.json"
  sqlite_path: "/tmp/pizzetta/shop.db"
  archive_dir: "/tmp/pizzetta/archive"
logging:
  level: "debug"
  format: "json"
menu:
  sizes:
    - name: "small"
      base_price: 9.50
    - name: "family"
      base_price: 21.00
  toppings:
    - "cheese"
    - "anchovies"
  topping_price: 2.25
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	// -- Storage --
	if cfg.Storage.DataDir != "/tmp/pizzetta/data" {
		t.Errorf("Storage.DataDir = %q, want %q", cfg.Storage.DataDir, "/tmp/pizzetta/data")
	}
	if cfg.Storage.OrdersFile != "shop.json" {
		t.Errorf("Storage.OrdersFile = %q, want %q", cfg.Storage.OrdersFile, "shop.json")
	}
	if got, want := cfg.Storage.OrdersPath(), filepath.Join("/tmp/pizzetta/data", "shop.json"); got != want {
		t.Errorf("Storage.OrdersPath() = %q, want %q", got, want)
	}
	if cfg.Storage.DBPath() != "/tmp/pizzetta/shop.db" {
		t.Errorf("Storage.DBPath() = %q, want %q", cfg.Storage.DBPath(), "/tmp/pizzetta/shop.db")
	}
	if cfg.Storage.ArchivePath() != "/tmp/pizzetta/archive" {
		t.Errorf("Storage.ArchivePath() = %q, want %q", cfg.Storage.ArchivePath(), "/tmp/pizzetta/archive")
	}

	// -- Logging --
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}

	// -- Menu --
	if len(cfg.Menu.Sizes) != 2 {
		t.Fatalf("len(Menu.Sizes) = %d, want 2", len(cfg.Menu.Sizes))
	}
	if cfg.Menu.Sizes[1].Name != "family" {
		t.Errorf("Menu.Sizes[1].Name = %q, want %q", cfg.Menu.Sizes[1].Name, "family")
	}
	if cfg.Menu.Sizes[1].BasePrice != 21.00 {
		t.Errorf("Menu.Sizes[1].BasePrice = %v, want %v", cfg.Menu.Sizes[1].BasePrice, 21.00)
	}
	if len(cfg.Menu.Toppings) != 2 || cfg.Menu.Toppings[1] != "anchovies" {
		t.Errorf("Menu.Toppings = %v, want [cheese anchovies]", cfg.Menu.Toppings)
	}
	if cfg.Menu.ToppingPrice != 2.25 {
		t.Errorf("Menu.ToppingPrice = %v, want %v", cfg.Menu.ToppingPrice, 2.25)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnvOverrides()

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Storage.DataDir != "data" {
		t.Errorf("Storage.DataDir = %q, want %q", cfg.Storage.DataDir, "data")
	}
	if got, want := cfg.Storage.OrdersPath(), filepath.Join("data", "orders.json"); got != want {
		t.Errorf("Storage.OrdersPath() = %q, want %q", got, want)
	}
	if got, want := cfg.Storage.DBPath(), filepath.Join("data", "pizzetta.db"); got != want {
		t.Errorf("Storage.DBPath() = %q, want %q", got, want)
	}
	if got, want := cfg.Storage.ArchivePath(), filepath.Join("data", "archive"); got != want {
		t.Errorf("Storage.ArchivePath() = %q, want %q", got, want)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "text")
	}
	if len(cfg.Menu.Sizes) != 3 {
		t.Errorf("len(Menu.Sizes) = %d, want 3", len(cfg.Menu.Sizes))
	}
	if len(cfg.Menu.Toppings) != 8 {
		t.Errorf("len(Menu.Toppings) = %d, want 8", len(cfg.Menu.Toppings))
	}
	if cfg.Menu.ToppingPrice != 1.50 {
		t.Errorf("Menu.ToppingPrice = %v, want %v", cfg.Menu.ToppingPrice, 1.50)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnvOverrides()

	path := writeTempConfig(t, `
logging:
  level: "warn"
menu:
  topping_price: 0.75
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "warn")
	}
	// Everything the file does not mention stays at its default.
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "text")
	}
	if cfg.Storage.DataDir != "data" {
		t.Errorf("Storage.DataDir = %q, want %q", cfg.Storage.DataDir, "data")
	}
	if len(cfg.Menu.Sizes) != 3 {
		t.Errorf("len(Menu.Sizes) = %d, want 3", len(cfg.Menu.Sizes))
	}
	if cfg.Menu.ToppingPrice != 0.75 {
		t.Errorf("Menu.ToppingPrice = %v, want %v", cfg.Menu.ToppingPrice, 0.75)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnvOverrides()

	path := writeTempConfig(t, `
storage:
  data_dir: "/original/data"
logging:
  level: "info"
  format: "json"
`)

	os.Setenv("PIZZETTA_DATA_DIR", "/env/data")
	os.Setenv("LOG_LEVEL", "error")
	defer os.Unsetenv("PIZZETTA_DATA_DIR")
	defer os.Unsetenv("LOG_LEVEL")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Storage.DataDir != "/env/data" {
		t.Errorf("Storage.DataDir = %q, want %q (env override)", cfg.Storage.DataDir, "/env/data")
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want %q (env override)", cfg.Logging.Level, "error")
	}
	// format should remain from YAML since no env override was set.
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q (from YAML)", cfg.Logging.Format, "json")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnvOverrides()

	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown log level",
			yaml: "logging:\n  level: \"loud\"\n",
		},
		{
			name: "duplicate size names",
			yaml: "menu:\n  sizes:\n    - name: \"small\"\n      base_price: 9.99\n    - name: \"small\"\n      base_price: 12.99\n",
		},
		{
			name: "non-positive base price",
			yaml: "menu:\n  sizes:\n    - name: \"small\"\n      base_price: 0\n",
		},
		{
			name: "duplicate toppings",
			yaml: "menu:\n  toppings:\n    - \"cheese\"\n    - \"cheese\"\n",
		},
		{
			name: "negative topping price",
			yaml: "menu:\n  topping_price: -1.50\n",
		},
	}

	for _, tt := range tests {
		path := writeTempConfig(t, tt.yaml)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: Load() returned nil error, want validation failure", tt.name)
		}
	}
}

func TestMenuToDomain(t *testing.T) {
	clearEnvOverrides()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	menu := cfg.Menu.ToDomain()

	base, ok := menu.BasePrice("medium")
	if !ok {
		t.Fatal("BasePrice(medium) not found")
	}
	if got := base.StringFixed(2); got != "14.99" {
		t.Errorf("medium base price = %s, want 14.99", got)
	}
	if got := menu.ToppingPrice.StringFixed(2); got != "1.50" {
		t.Errorf("topping price = %s, want 1.50", got)
	}
	if !menu.HasTopping("green_peppers") {
		t.Error("HasTopping(green_peppers) = false, want true")
	}
	if menu.HasTopping("pineapple") {
		t.Error("HasTopping(pineapple) = true, want false")
	}
}
