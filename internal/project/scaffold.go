package project

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// appStub is the default application entry point written into a fresh
// project. The firmware build freezes the app module into the image and
// calls run() from main.
const appStub = `import pyb


def run():
    print("app module running")
    pyb.LED(1).on()
`

// CreateTree creates the fixed subdirectory skeleton of a project.
func CreateTree(l Layout) error {
	for _, dir := range []string{l.CompilerDir(), l.AppDir(), l.VSCodeDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// WriteAppStub writes the default application source into the project.
func WriteAppStub(l Layout) error {
	if err := os.MkdirAll(l.AppDir(), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", l.AppDir(), err)
	}
	if err := os.WriteFile(l.AppSource(), []byte(appStub), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", l.AppSource(), err)
	}
	return nil
}

// RemoveAllEntries recursively deletes every top-level entry of dir,
// leaving dir itself in place.
func RemoveAllEntries(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// CopyTree copies the directory tree at src to dst. dst must not exist.
func CopyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if info.IsDir() {
			return os.MkdirAll(target, info.Mode().Perm())
		}
		return CopyFile(path, target, info.Mode().Perm())
	})
}

// CopyFile copies a single file, creating parent directories as needed.
func CopyFile(src, dst string, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return nil
}
