package scanner

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// EntryPoint is the file that marks a directory as a Python package add-on.
const EntryPoint = "__init__.py"

// Unit is one discoverable add-on: either a single source file or a
// directory package with an __init__.py entry point.
type Unit struct {
	ID   string // directory or file name minus extension
	Path string // absolute or caller-relative path to the primary source file
	Ext  string // packaging extension: ".py" for files, ".zip" for packages
}

// Scan lists the add-on units found directly inside dir. Hidden entries
// (leading dot) are skipped. Directory entries without an __init__.py are
// skipped with an info log. Entries come back in lexical order, so repeated
// scans of an unchanged directory yield identical results.
//
// The only error condition is the directory itself being unreadable;
// everything else is a per-unit skip.
func Scan(dir string, log *slog.Logger) ([]Unit, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading add-ons directory %s: %w", dir, err)
	}

	var units []Unit
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		id := strings.TrimSuffix(name, filepath.Ext(name))
		path := filepath.Join(dir, name)

		if entry.IsDir() {
			initFile := filepath.Join(path, EntryPoint)
			if _, err := os.Stat(initFile); err != nil {
				log.Info("skipping directory, not a Python package",
					"path", path)
				continue
			}
			units = append(units, Unit{ID: id, Path: initFile, Ext: ".zip"})
			continue
		}

		units = append(units, Unit{ID: id, Path: path, Ext: ".py"})
	}

	return units, nil
}
