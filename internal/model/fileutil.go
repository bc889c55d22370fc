package model

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// EmptyFileError is returned by FirstLine when a file has no lines at all.
type EmptyFileError struct {
	Path string
}

func (e *EmptyFileError) Error() string {
	return fmt.Sprintf("%s: file is empty", e.Path)
}

// FirstLine returns the first line of a text file. Line terminators (including
// a trailing carriage return) are not part of the result.
func FirstLine(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading %s: %w", filePath, err)
	}
	return "", &EmptyFileError{Path: filePath}
}

// DirEntry is a single child of a directory, as listed by ListDir.
type DirEntry struct {
	Name  string
	IsDir bool
	Size  int64
}

// ListDir returns the children of dir in the order the filesystem reports
// them. Unlike os.ReadDir the result is not sorted by name.
func ListDir(dir string) ([]DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	items, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	entries := make([]DirEntry, 0, len(items))
	for _, item := range items {
		e := DirEntry{Name: item.Name(), IsDir: item.IsDir()}
		// Follow symlinks and junctions so a linked directory counts as one.
		if info, err := os.Stat(filepath.Join(dir, item.Name())); err == nil {
			e.IsDir = info.IsDir()
			e.Size = info.Size()
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Exists reports whether path exists on disk.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
