package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Exists reports whether path exists. Errors other than "does not exist"
// are returned so that a permission problem is not mistaken for absence.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ReplaceDir moves staging to target, replacing whatever target held.
//
// All three paths must live on the same file system (staging and backup are
// expected to be siblings of target). The previous target is first renamed
// to backup; if moving staging into place fails, backup is renamed back so
// target keeps its old content. backup is removed once the swap has
// succeeded; if that removal fails, target already holds the new content
// and the returned error names the leftover backup.
func ReplaceDir(staging, target, backup string) error {
	exists, err := Exists(target)
	if err != nil {
		return fmt.Errorf("failed to inspect target directory %s: %w", target, err)
	}

	if !exists {
		if err := os.Rename(staging, target); err != nil {
			return fmt.Errorf("failed to move %s to %s: %w", staging, target, err)
		}
		return nil
	}

	if err := os.Rename(target, backup); err != nil {
		return fmt.Errorf("failed to move previous target %s aside: %w", target, err)
	}

	if err := os.Rename(staging, target); err != nil {
		if rerr := os.Rename(backup, target); rerr != nil {
			return errors.Join(
				fmt.Errorf("failed to move %s to %s: %w", staging, target, err),
				fmt.Errorf("failed to restore previous target from %s: %w", backup, rerr),
			)
		}
		return fmt.Errorf("failed to move %s to %s: %w", staging, target, err)
	}

	if err := os.RemoveAll(backup); err != nil {
		return fmt.Errorf("replaced %s but failed to remove previous contents at %s: %w", target, backup, err)
	}
	return nil
}

// ListFiles returns the slash-separated paths of all regular files under
// root, sorted. Entries for which skip returns true are left out; skip may
// be nil.
func ListFiles(root string, skip SkipFunc) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel != "." && skip != nil && skip(rel, d) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// HiddenSibling returns a dot-prefixed path next to target whose name
// starts with target's base name followed by suffix.
func HiddenSibling(target, suffix string) string {
	base := strings.TrimPrefix(filepath.Base(target), ".")
	return filepath.Join(filepath.Dir(target), "."+base+suffix)
}
