package ycmd

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeDefaultOptions lays out a fake backend directory with a default
// options document and returns the backend path.
func writeDefaultOptions(t *testing.T, doc string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "ycmd")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "default_settings.json"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write defaults: %v", err)
	}
	return root
}

const sampleDefaults = `{
	"hmac_secret": "",
	"global_ycm_extra_conf": "",
	"confirm_extra_conf": 1,
	"extra_conf_globlist": ["~/repos/*"],
	"rust_src_path": "/usr/src/rust",
	"min_num_of_chars_for_completion": 2
}`

func TestMaterializeOptions_RoundTrip(t *testing.T) {
	settings := DefaultSettings()
	settings.Path = writeDefaultOptions(t, sampleDefaults)
	settings.GlobalExtraConf = "/etc/ycm_extra_conf.py"
	settings.ConfirmExtraConf = false

	_, secret, err := provision()
	if err != nil {
		t.Fatalf("provision: %v", err)
	}

	path, err := materializeOptions(settings, secret)
	if err != nil {
		t.Fatalf("materializeOptions: %v", err)
	}
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read options: %v", err)
	}

	var opts map[string]any
	if err := json.Unmarshal(data, &opts); err != nil {
		t.Fatalf("options file is not valid JSON: %v", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(opts["hmac_secret"].(string))
	if err != nil {
		t.Fatalf("hmac_secret is not base64: %v", err)
	}
	if string(decoded) != string(secret) {
		t.Error("round-tripped secret does not match the provisioned one")
	}

	if opts["global_ycm_extra_conf"] != "/etc/ycm_extra_conf.py" {
		t.Errorf("global_ycm_extra_conf = %v", opts["global_ycm_extra_conf"])
	}
	if opts["confirm_extra_conf"] != float64(0) {
		t.Errorf("confirm_extra_conf = %v, want 0", opts["confirm_extra_conf"])
	}
	if globs, ok := opts["extra_conf_globlist"].([]any); !ok || len(globs) != 0 {
		t.Errorf("extra_conf_globlist = %v, want empty list", opts["extra_conf_globlist"])
	}
	if opts["rust_src_path"] != "" {
		t.Errorf("rust_src_path = %v, want cleared", opts["rust_src_path"])
	}

	// Untouched defaults survive the overlay.
	if opts["min_num_of_chars_for_completion"] != float64(2) {
		t.Errorf("min_num_of_chars_for_completion = %v, want 2", opts["min_num_of_chars_for_completion"])
	}
}

func TestMaterializeOptions_UniquePaths(t *testing.T) {
	settings := DefaultSettings()
	settings.Path = writeDefaultOptions(t, sampleDefaults)

	secret := make([]byte, secretLen)

	p1, err := materializeOptions(settings, secret)
	if err != nil {
		t.Fatalf("first materialize: %v", err)
	}
	defer os.Remove(p1)

	p2, err := materializeOptions(settings, secret)
	if err != nil {
		t.Fatalf("second materialize: %v", err)
	}
	defer os.Remove(p2)

	if p1 == p2 {
		t.Errorf("two materializations produced the same path %q", p1)
	}
}

func TestMaterializeOptions_MissingDefaults(t *testing.T) {
	settings := DefaultSettings()
	settings.Path = t.TempDir() // No ycmd/default_settings.json inside.

	_, err := materializeOptions(settings, make([]byte, secretLen))
	if err == nil {
		t.Fatal("expected an error for missing defaults")
	}
	if !errors.Is(err, ErrOptions) {
		t.Errorf("expected ErrOptions, got %v", err)
	}
}

func TestMaterializeOptions_InvalidDefaults(t *testing.T) {
	settings := DefaultSettings()
	settings.Path = writeDefaultOptions(t, "{not json")

	_, err := materializeOptions(settings, make([]byte, secretLen))
	if !errors.Is(err, ErrOptions) {
		t.Errorf("expected ErrOptions for invalid defaults, got %v", err)
	}
}
