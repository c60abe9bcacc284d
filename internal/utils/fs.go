package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// MaxFilenameLength is the maximum length for a sanitized name. 255 is a
// common filesystem component limit.
const MaxFilenameLength = 255

// unsafeCharsRegex matches characters not allowed in filenames. \w in Go
// regexp is ASCII word characters, so anything outside [0-9A-Za-z_.-] is
// replaced.
var unsafeCharsRegex = regexp.MustCompile(`[^\w\-.]`)

// underscoreRunRegex matches runs of two or more underscores
var underscoreRunRegex = regexp.MustCompile(`__+`)

// Sanitize transforms an arbitrary string into a filesystem-safe name.
// The transform is deterministic and idempotent: unsafe characters become
// underscores, underscore runs collapse to one, the result is capped at
// MaxFilenameLength and carries no leading or trailing underscores.
func Sanitize(name string) string {
	name = unsafeCharsRegex.ReplaceAllString(name, "_")
	name = underscoreRunRegex.ReplaceAllString(name, "_")
	if len(name) > MaxFilenameLength {
		name = name[:MaxFilenameLength]
	}
	return strings.Trim(name, "_")
}

// FileName builds a cache file name from an arbitrary title and extension.
// The whole component, extension included, stays within MaxFilenameLength so
// the write cannot fail with a name-too-long error.
func FileName(title, ext string) string {
	name := Sanitize(title)
	if len(name)+len(ext) > MaxFilenameLength {
		name = strings.Trim(name[:MaxFilenameLength-len(ext)], "_")
	}
	return name + ext
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
