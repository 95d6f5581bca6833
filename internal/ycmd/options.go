package ycmd

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// defaultOptionsFile is the backend-shipped default options document,
// resolved relative to the configured backend path.
const defaultOptionsFile = "ycmd/default_settings.json"

// materializeOptions merges the backend's default options with this launch's
// secret and the extra-conf policy from settings, writes the result to a
// uniquely-named temporary file, and returns its path.
//
// The backend reads the file exactly once at startup and the supervisor makes
// no attempt to clean it up on failure; temp-directory GC is an external
// concern.
func materializeOptions(settings Settings, secret []byte) (string, error) {
	defaults, err := os.ReadFile(filepath.Join(settings.Path, defaultOptionsFile))
	if err != nil {
		return "", fmt.Errorf("%w: read defaults: %v", ErrOptions, err)
	}
	if !gjson.ValidBytes(defaults) {
		return "", fmt.Errorf("%w: defaults are not valid JSON", ErrOptions)
	}

	doc := defaults
	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.SetBytes(doc, path, value)
	}

	set("hmac_secret", base64.StdEncoding.EncodeToString(secret))
	set("global_ycm_extra_conf", settings.GlobalExtraConf)
	set("confirm_extra_conf", boolToInt(settings.ConfirmExtraConf))
	set("extra_conf_globlist", []string{})
	// Language-specific source hints do not apply to this integration.
	set("rust_src_path", "")
	if err != nil {
		return "", fmt.Errorf("%w: merge: %v", ErrOptions, err)
	}

	// Timestamp plus UUID so concurrent launches can never collide.
	name := fmt.Sprintf("ycmd-options-%d-%s.json", time.Now().UnixNano(), uuid.NewString())
	path := filepath.Join(os.TempDir(), name)

	if err := os.WriteFile(path, doc, 0o600); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", ErrOptions, path, err)
	}

	return path, nil
}

// boolToInt renders a bool the way the backend's options schema expects.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
