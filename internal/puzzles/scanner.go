// Package puzzles finds puzzle files the engine can load.
package puzzles

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Header is the first line of a puzzle file: "<rows> <cols> <wrapping>".
type Header struct {
	Rows, Cols int
	Wrapping   bool
}

// Entry represents a discoverable puzzle in the puzzle directory.
type Entry struct {
	Name   string // file name without extension
	Path   string
	Header Header
}

// ScanDirectory lists the puzzle files in dir, sorted by name. Files whose
// header does not parse are skipped.
func ScanDirectory(dir string) ([]Entry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read puzzle directory: %w", err)
	}

	var puzzles []Entry
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".txt" && ext != ".akari" {
			continue
		}

		path := filepath.Join(dir, name)
		h, err := ReadHeader(path)
		if err != nil {
			continue
		}
		puzzles = append(puzzles, Entry{
			Name:   strings.TrimSuffix(name, filepath.Ext(name)),
			Path:   path,
			Header: h,
		})
	}

	sort.Slice(puzzles, func(i, j int) bool { return puzzles[i].Name < puzzles[j].Name })
	return puzzles, nil
}

// ReadHeader parses the header line of the puzzle file at path.
func ReadHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		return Header{}, fmt.Errorf("%s: empty puzzle file", path)
	}
	var h Header
	var wrapping int
	if _, err := fmt.Sscanf(strings.TrimSpace(line), "%d %d %d", &h.Rows, &h.Cols, &wrapping); err != nil {
		return Header{}, fmt.Errorf("%s: bad header %q: %w", path, strings.TrimSpace(line), err)
	}
	if h.Rows <= 0 || h.Cols <= 0 || (wrapping != 0 && wrapping != 1) {
		return Header{}, fmt.Errorf("%s: bad header %q", path, strings.TrimSpace(line))
	}
	h.Wrapping = wrapping == 1
	return h, nil
}

// Resolve turns a puzzle name or path into a file path. A name is looked
// up among the entries of dir.
func Resolve(dir, nameOrPath string) (Entry, error) {
	if _, err := os.Stat(nameOrPath); err == nil {
		h, err := ReadHeader(nameOrPath)
		if err != nil {
			return Entry{}, err
		}
		base := filepath.Base(nameOrPath)
		return Entry{Name: strings.TrimSuffix(base, filepath.Ext(base)), Path: nameOrPath, Header: h}, nil
	}
	entries, err := ScanDirectory(dir)
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.Name == nameOrPath {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("puzzle %q not found in %s", nameOrPath, dir)
}
