// Package epochpath resolves where epoch.conf lives, adapted from the
// teacher's pkg/config configDir/findOrCreateConfigDir. The teacher
// resolved a per-user GUI config directory under XDG_CONFIG_HOME; an init
// system's configuration is not per-user, so this generalizes that to a
// fixed system path, keeping the teacher's env-var override and its
// xdg-backed fallback for running outside of a real installed root (tests,
// a developer's sandbox).
package epochpath

import (
	"os"
	"path/filepath"

	"github.com/OpenPeeDeeP/xdg"
)

// DefaultDir is where a real install keeps epoch.conf, mirroring
// CONFIGDIR from config.c.
const DefaultDir = "/etc/epoch"

// FileName is the configuration file's name within Dir(), mirroring
// CONF_NAME from config.c.
const FileName = "epoch.conf"

// envOverride mirrors the teacher's CONFIG_DIR environment override
// (configDirForVendor, pkg/config/app_config.go:469-476).
const envOverride = "EPOCH_CONF_DIR"

// Dir returns the directory epoch.conf lives in: the EPOCH_CONF_DIR
// override if set, DefaultDir if it exists, or an XDG config directory as
// a last resort for running without root (the same fallback shape as the
// teacher's legacy-vendor-directory check in configDir()).
func Dir() string {
	if override := os.Getenv(envOverride); override != "" {
		return override
	}
	if _, err := os.Stat(DefaultDir); err == nil {
		return DefaultDir
	}
	return xdg.New("", "epoch").ConfigHome()
}

// File returns the full path to epoch.conf.
func File() string {
	return filepath.Join(Dir(), FileName)
}

// EnsureDir creates Dir() if it doesn't already exist, mirroring
// findOrCreateConfigDir.
func EnsureDir() (string, error) {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
