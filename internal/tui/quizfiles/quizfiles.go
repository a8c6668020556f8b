// ABOUTME: Discovers quiz question files an admin can upload
// ABOUTME: Looks in READS_QUIZ_DIR, then ./quizzes, then the working directory

package quizfiles

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// EnvDir overrides where quiz files are looked for
const EnvDir = "READS_QUIZ_DIR"

// extensions are the formats client.ParseQuizFile reads
var extensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// File is a discovered quiz file
type File struct {
	Name string // Base name, e.g. "wallets.yaml"
	Path string // Full path
}

// Discover lists quiz files in dir, sorted by name. A missing directory
// yields no files.
func Discover(dir string) ([]File, error) {
	if dir == "" {
		return []File{}, nil
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []File{}, nil
	}
	if err != nil {
		return nil, err
	}

	files := []File{}
	for _, entry := range entries {
		if entry.IsDir() || !extensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		files = append(files, File{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// FindDir picks the directory to discover from, relative to base
func FindDir(base string) string {
	if env := os.Getenv(EnvDir); env != "" {
		if info, err := os.Stat(env); err == nil && info.IsDir() {
			return env
		}
	}
	quizzes := filepath.Join(base, "quizzes")
	if info, err := os.Stat(quizzes); err == nil && info.IsDir() {
		return quizzes
	}
	return base
}
