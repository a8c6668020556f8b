// ABOUTME: Remembers quiz files recently uploaded by an admin
// ABOUTME: Stored as JSON next to the session token in the config directory

package recentfiles

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
)

// MaxRecentFiles is the maximum number of recent files to keep
const MaxRecentFiles = 5

// FileName is the list's file inside the config directory
const FileName = "recent_quizzes.json"

// RecentFiles manages the list of recently uploaded quiz files
type RecentFiles struct {
	configDir string
	files     []string
}

type recentData struct {
	Files []string `json:"files"`
}

// New creates a manager rooted at the config directory
func New(configDir string) *RecentFiles {
	return &RecentFiles{configDir: configDir}
}

func (rf *RecentFiles) path() string {
	return filepath.Join(rf.configDir, FileName)
}

// Load reads the list from disk, dropping files that no longer exist.
// A missing or corrupt list reads as empty.
func (rf *RecentFiles) Load() ([]string, error) {
	data, err := os.ReadFile(rf.path())
	if os.IsNotExist(err) {
		rf.files = []string{}
		return rf.files, nil
	}
	if err != nil {
		return nil, err
	}

	var recent recentData
	if err := json.Unmarshal(data, &recent); err != nil {
		rf.files = []string{}
		return rf.files, nil
	}

	rf.files = slices.DeleteFunc(recent.Files, func(p string) bool {
		_, err := os.Stat(p)
		return err != nil
	})
	return rf.files, nil
}

// Save writes the list, trimmed to MaxRecentFiles
func (rf *RecentFiles) Save(files []string) error {
	if err := os.MkdirAll(rf.configDir, 0o700); err != nil {
		return err
	}
	if len(files) > MaxRecentFiles {
		files = files[:MaxRecentFiles]
	}
	rf.files = files

	data, err := json.MarshalIndent(recentData{Files: files}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(rf.path(), data, 0o600)
}

// Add puts a path at the front of the list, removing any earlier entry.
// Relative paths are stored absolute so the list works from any directory.
func (rf *RecentFiles) Add(path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if rf.files == nil {
		if _, err := rf.Load(); err != nil {
			rf.files = []string{}
		}
	}

	files := make([]string, 0, len(rf.files)+1)
	files = append(files, path)
	for _, f := range rf.files {
		if f != path {
			files = append(files, f)
		}
	}
	return rf.Save(files)
}

// List returns the current list, loading it on first use
func (rf *RecentFiles) List() []string {
	if rf.files == nil {
		rf.Load()
	}
	return rf.files
}
