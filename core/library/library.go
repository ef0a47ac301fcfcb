// Package library enumerates local MP3 paths from an iTunes-style XML
// property-list library file.
package library

import (
	"fmt"
	"net/url"
	"os"

	"howett.net/plist"
)

type libraryFile struct {
	Tracks map[string]track `plist:"Tracks"`
}

type track struct {
	Location string `plist:"Location"`
}

// Tracks parses the library at path and returns the local file path of
// every track with a file:// location. Entries without a location, or
// with any other locator scheme (network streams, say), are skipped.
// Enumeration order is unspecified.
func Tracks(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}
	defer f.Close()

	var lib libraryFile
	if err := plist.NewDecoder(f).Decode(&lib); err != nil {
		return nil, fmt.Errorf("parse library: %w", err)
	}

	var paths []string
	for _, t := range lib.Tracks {
		if t.Location == "" {
			continue
		}
		u, err := url.Parse(t.Location)
		if err != nil || u.Scheme != "file" || u.Path == "" {
			continue
		}
		paths = append(paths, u.Path)
	}
	return paths, nil
}
