// Package importer manages the import inbox: SPED files dropped into
// <root>/import/ wait there until a batch run moves them to
// <root>/import/processed/.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileInfo describes a SPED file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

const (
	// ImportDir is the subdirectory watched for SPED files.
	ImportDir = "import"
	// ProcessedDir is where handled files are moved.
	ProcessedDir = "import/processed"
)

// extensions are the file suffixes treated as SPED exports.
var extensions = []string{".txt", ".sped"}

func isSPEDFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Scan returns the SPED files in <root>/import/, sorted by name.
func Scan(root string) ([]FileInfo, error) {
	dir := filepath.Join(root, ImportDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !isSPEDFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/. An existing
// file with the same name in processed/ is an error, never overwritten.
func MarkProcessed(root, fileName string) error {
	src := filepath.Join(root, ImportDir, fileName)
	dstDir := filepath.Join(root, ProcessedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, os.ErrExist)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
