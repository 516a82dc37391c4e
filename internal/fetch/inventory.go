package fetch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry describes one cached file.
type Entry struct {
	Category string
	Path     string
	Size     int64
	ModTime  time.Time
}

// List walks cacheDir (or one category beneath it) and returns every cached
// file, skipping in-flight .part downloads. A missing directory yields no
// entries.
func List(cacheDir, category string) ([]Entry, error) {
	root := cacheDir
	if category != "" {
		root = filepath.Join(cacheDir, category)
	}
	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == root {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, ".part") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(cacheDir, path)
		if err != nil {
			return err
		}
		cat, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
		entries = append(entries, Entry{Category: cat, Path: path, Size: info.Size(), ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list cache: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// Clear removes a category directory, or every category when category is
// empty. The cache root itself is kept.
func Clear(cacheDir, category string) error {
	if category != "" {
		if strings.ContainsAny(category, `/\`) || category == "." || category == ".." {
			return fmt.Errorf("clear cache: invalid category %q", category)
		}
		if err := os.RemoveAll(filepath.Join(cacheDir, category)); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		return nil
	}
	children, err := os.ReadDir(cacheDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("clear cache: %w", err)
	}
	for _, child := range children {
		if err := os.RemoveAll(filepath.Join(cacheDir, child.Name())); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
	}
	return nil
}
