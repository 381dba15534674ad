package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const versionLayout = "20060102150405"

var nameSanitizeRe = regexp.MustCompile(`[^a-z0-9_]+`)

// CreateSQLMigration writes an empty goose migration named
// <dir>/<version>_<name>.sql. The version is the current UTC timestamp, bumped
// past the newest file already in dir so ordering survives clock skew.
func CreateSQLMigration(dir string, name string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("dir is required")
	}
	safe := sanitizeName(name)
	if safe == "" {
		return "", fmt.Errorf("name %q results in empty sanitized filename", name)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", dir, err)
	}

	latest, err := latestVersion(dir)
	if err != nil {
		return "", err
	}
	version, _ := strconv.ParseInt(time.Now().UTC().Format(versionLayout), 10, 64)
	if version <= latest {
		version = latest + 1
	}

	filename := fmt.Sprintf("%d_%s.sql", version, safe)
	if !sqlFileRe.MatchString(filename) {
		return "", fmt.Errorf("generated filename %q is not a valid migration name", filename)
	}
	fullpath := filepath.Join(dir, filename)

	body := fmt.Sprintf("-- +goose Up\n-- %s\n\n-- +goose Down\n-- rollback %s\n", safe, safe)
	if err := os.WriteFile(fullpath, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write migration %q: %w", fullpath, err)
	}
	return fullpath, nil
}

func sanitizeName(name string) string {
	safe := strings.ToLower(strings.TrimSpace(name))
	safe = strings.ReplaceAll(safe, " ", "_")
	safe = nameSanitizeRe.ReplaceAllString(safe, "_")
	return strings.Trim(safe, "_")
}

func latestVersion(dir string) (int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read dir %q: %w", dir, err)
	}
	var latest int64
	for _, e := range entries {
		m := sqlFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		v, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		if v > latest {
			latest = v
		}
	}
	return latest, nil
}
