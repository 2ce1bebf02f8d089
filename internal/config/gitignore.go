package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Tracked: config.yaml. Ignored: sessions, logs, metric dumps and reports.
const gitignoreContent = `# coalcarbon project-local data (auto-generated)
# config.yaml is tracked; sessions, logs and metrics are not.
session.yaml
*.log
*.prom
reports/
`

// GitignoreContent is the body that EnsureGitignore writes.
func GitignoreContent() string {
	return gitignoreContent
}

// EnsureGitignore seeds dir/.gitignore for a project-local .coalcarbon
// directory, creating dir if needed. It reports whether it wrote the file;
// a user's own .gitignore is left alone.
func EnsureGitignore(dir string) (bool, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("creating %s: %w", dir, err)
	}

	path := filepath.Join(dir, ".gitignore")
	//nolint:gosec // Plain text meant for git and the user's editor.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", path, err)
	}

	_, writeErr := f.WriteString(gitignoreContent)
	closeErr := f.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
