package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ExportFile is a candidate chat export found under the exports root.
type ExportFile struct {
	Path  string
	Mtime time.Time
	Size  int64
}

// Exports lists .txt files under root, newest first. A missing root is not
// an error; it just yields nothing.
func Exports(root string) ([]ExportFile, error) {
	var files []ExportFile
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}
		files = append(files, ExportFile{
			Path:  path,
			Mtime: info.ModTime(),
			Size:  info.Size(),
		})
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Mtime.After(files[j].Mtime)
	})
	return files, nil
}

// Newest returns the most recently modified export under root.
func Newest(root string) (ExportFile, error) {
	files, err := Exports(root)
	if err != nil {
		return ExportFile{}, err
	}
	if len(files) == 0 {
		return ExportFile{}, fmt.Errorf("no .txt exports under %s", root)
	}
	return files[0], nil
}
