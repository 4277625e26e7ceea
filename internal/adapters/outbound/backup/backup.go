// Package backup creates the pre-mutation safety copy of a project tree.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
)

// excludedNames are directory entries never carried into a backup.
var excludedNames = map[string]bool{
	".git":         true,
	"__pycache__":  true,
	"node_modules": true,
	".venv":        true,
	"build":        true,
	"dist":         true,
	".armshift":    true,
}

// Creator implements domain.BackupCreator with a sibling-directory copy.
type Creator struct {
	logger hclog.Logger
}

func New(logger hclog.Logger) *Creator {
	return &Creator{logger: logger}
}

// Create copies root to a sibling directory named
// <dir>_backup_<YYYYMMDD_HHMMSS> and returns its path. The destination
// must not already exist.
func (c *Creator) Create(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	dst := filepath.Join(filepath.Dir(absRoot), fmt.Sprintf("%s_backup_%s", filepath.Base(absRoot), timestamp))

	c.logger.Info("creating backup", "path", dst)
	if err := os.Mkdir(dst, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("creating backup at %s: %w", dst, err)
	}
	if err := copyTree(absRoot, dst); err != nil {
		return "", fmt.Errorf("creating backup at %s: %w", dst, err)
	}
	return dst, nil
}

// copyTree mirrors src into dst, skipping excluded entry names.
// Symlinks are recreated as links, never followed.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			if excludedNames[d.Name()] {
				return filepath.SkipDir
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm())
		}
		if excludedNames[d.Name()] {
			return nil
		}

		if d.Type()&os.ModeSymlink != 0 {
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
