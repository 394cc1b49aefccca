// Public domain.

// Package workdir locates a project root directory above the current
// one and makes it the working directory, so tools find their data
// files when run from anywhere inside a checkout.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Find walks from dir up toward the filesystem root and returns the
// first directory whose path ends in suffix.
func Find(dir, suffix string) (string, error) {
	for d := filepath.Clean(dir); ; {
		if strings.HasSuffix(d, suffix) {
			return d, nil
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", fmt.Errorf("workdir: no directory ending in %q above %s",
				suffix, dir)
		}
		d = parent
	}
}

// Chdir finds the project directory above the current working
// directory and changes into it, returning the new working directory.
func Chdir(suffix string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	d, err := Find(wd, suffix)
	if err != nil {
		return "", err
	}
	if err = os.Chdir(d); err != nil {
		return "", err
	}
	return d, nil
}
