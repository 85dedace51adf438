package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// hiddenPrefix marks hidden files.
const hiddenPrefix = "."

// Discover walks root recursively and returns every regular file (or
// symlink to one) whose own name does not start with a dot, sorted
// lexicographically for deterministic processing order. Hidden
// directories are walked; only the directories in exclude are pruned. Unreadable subdirectories are returned in
// skipped instead of failing the walk; only an unreadable root is an error.
func Discover(root string, exclude ...string) (files []string, skipped []FileFailure, err error) {
	var excluded []os.FileInfo
	for _, ex := range exclude {
		if ex == "" {
			continue
		}
		if fi, err := os.Stat(ex); err == nil {
			excluded = append(excluded, fi)
		}
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			skipped = append(skipped, FileFailure{Path: path, Err: fmt.Errorf("%w: %w", ErrUnreadable, err)})
			return nil
		}
		if d.IsDir() {
			if isExcluded(d, excluded) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), hiddenPrefix) {
			return nil
		}
		if isRegular(path, d) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(files)
	return files, skipped, nil
}

func isExcluded(d fs.DirEntry, excluded []os.FileInfo) bool {
	if len(excluded) == 0 {
		return false
	}
	fi, err := d.Info()
	if err != nil {
		return false
	}
	for _, ex := range excluded {
		if os.SameFile(fi, ex) {
			return true
		}
	}
	return false
}

// isRegular reports whether d is a regular file, following a symlink.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
