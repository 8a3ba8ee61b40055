package fsutil

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// SkipFunc reports whether an entry must be left out of a copy. rel is the
// slash-separated path relative to the source root. Returning true for a
// directory skips its whole subtree.
type SkipFunc func(rel string, d fs.DirEntry) bool

// SkipGitMetadata leaves out `.git` files and directories at any depth.
func SkipGitMetadata(_ string, d fs.DirEntry) bool {
	return d.Name() == ".git"
}

// CopyTree recursively copies srcDir into dstDir, creating dstDir if needed.
//
// File modes are preserved. Symbolic links are skipped so that a link in the
// source cannot make the copy read from outside of it. Entries for which
// skip returns true are left out; skip may be nil.
func CopyTree(srcDir, dstDir string, skip SkipFunc) error {
	return filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error walking source directory at %s: %w", path, walkErr)
		}

		relPath, err := filepath.Rel(srcDir, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}
		dstPath := filepath.Join(dstDir, relPath)

		if relPath != "." && skip != nil && skip(filepath.ToSlash(relPath), d) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}

		if d.IsDir() {
			// Owner write is kept so the remaining entries can be created.
			if err := os.MkdirAll(dstPath, info.Mode().Perm()|0o700); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dstPath, err)
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}
		return copyFile(path, dstPath, info.Mode().Perm())
	})
}

// copyFile streams src into dst, creating dst with mode.
func copyFile(src, dst string, mode os.FileMode) (err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", src, err)
	}
	defer func() { _ = srcFile.Close() }()

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dst, err)
	}
	defer func() {
		if cerr := dstFile.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close destination file %s: %w", dst, cerr)
		}
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}

	return nil
}
