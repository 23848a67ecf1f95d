package pathutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideVault is returned when a vault-relative path climbs out of the
// vault directory.
var ErrOutsideVault = errors.New("path escapes the vault directory")

// NormalizePath converts Windows-style separators to the current platform's separator
// and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	// Replace Windows separators and collapse redundant separators/segments.
	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

// VaultRelative returns the path to target relative to the provided vault directory.
// The returned path always uses forward slashes to simplify downstream processing
// and ensure platform agnosticism.
func VaultRelative(vaultDir, target string) (string, error) {
	base := NormalizePath(vaultDir)
	cleanedTarget := NormalizePath(target)

	rel, err := filepath.Rel(base, cleanedTarget)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(rel), nil
}

// Resolve maps a configured document path onto the filesystem. Absolute and
// home-relative paths are used as-is. Relative paths are joined onto vaultDir
// and must stay inside it; with no vault they resolve against the working
// directory.
func Resolve(vaultDir, target string) (string, error) {
	target = ExpandHome(strings.TrimSpace(target))
	if target == "" {
		return "", nil
	}

	cleaned := NormalizePath(target)
	if filepath.IsAbs(cleaned) {
		return cleaned, nil
	}

	vaultDir = ExpandHome(strings.TrimSpace(vaultDir))
	if vaultDir == "" {
		return cleaned, nil
	}

	base := NormalizePath(vaultDir)
	joined := filepath.Join(base, cleaned)

	rel, err := VaultRelative(base, joined)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", ErrOutsideVault
	}

	return joined, nil
}
