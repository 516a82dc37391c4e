// Package fileutil holds the path and file helpers shared by pipeline steps.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// rename is replaced in tests to force the cross-device path.
var rename = os.Rename

// Exists reports whether anything is present at path.
func Exists(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Sibling derives an intermediate file name next to path: suffix goes before
// the extension, and a non-empty ext replaces it.
//
//	Sibling("a/b.mp3", "_x", "")    == "a/b_x.mp3"
//	Sibling("a/b.mp3", "_x", "wav") == "a/b_x.wav"
func Sibling(path, suffix, ext string) string {
	old := filepath.Ext(path)
	stem := path[:len(path)-len(old)]
	if ext != "" {
		old = "." + strings.TrimPrefix(ext, ".")
	}
	return stem + suffix + old
}

// MoveFile moves src to dst, creating parent directories. When src and dst
// live on different filesystems the file is copied to a ".partial" name,
// size-checked, renamed into place and only then removed from src.
func MoveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
	}
	err := rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return fmt.Errorf("move %s: %w", src, err)
	}
	if err := copyAcross(src, dst); err != nil {
		return fmt.Errorf("move %s across devices: %w", src, err)
	}
	return os.Remove(src)
}

func copyAcross(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return err
	}

	partial := dst + ".partial"
	out, err := os.OpenFile(partial, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(partial)
		}
	}()

	n, err := io.Copy(out, in)
	if err != nil {
		return err
	}
	if n != info.Size() {
		return fmt.Errorf("short copy: wrote %d of %d bytes", n, info.Size())
	}
	if err = out.Sync(); err != nil {
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}
	return os.Rename(partial, dst)
}
