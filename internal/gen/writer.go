package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist.
func WriteFiles(fsys afero.Fs, files []GeneratedFile, outputDir string) error {
	if err := fsys.MkdirAll(outputDir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		if err := afero.WriteFile(fsys, outputPath, file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// FileState is the on-disk state of a generated file.
type FileState int

const (
	FileUpToDate FileState = iota
	FileMissing
	FileStale
)

func (s FileState) String() string {
	switch s {
	case FileUpToDate:
		return "up to date"
	case FileMissing:
		return "missing"
	case FileStale:
		return "stale"
	default:
		return fmt.Sprintf("FileState(%d)", int(s))
	}
}

// FileStatus reports the state of one generated file.
type FileStatus struct {
	Filename string
	State    FileState
}

// CheckFiles compares freshly generated files with those in outputDir.
// The result is sorted by file name.
func CheckFiles(fsys afero.Fs, files []GeneratedFile, outputDir string) ([]FileStatus, error) {
	out := make([]FileStatus, 0, len(files))

	for _, file := range files {
		status := FileStatus{Filename: file.Filename}

		existing, err := afero.ReadFile(fsys, filepath.Join(outputDir, file.Filename))

		switch {
		case errors.Is(err, fs.ErrNotExist):
			status.State = FileMissing
		case err != nil:
			return nil, fmt.Errorf("reading file %s: %w", file.Filename, err)
		case !bytes.Equal(existing, file.Content):
			status.State = FileStale
		default:
			status.State = FileUpToDate
		}

		out = append(out, status)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Filename < out[j].Filename
	})

	return out, nil
}

// Outdated returns the statuses that are not up to date.
func Outdated(statuses []FileStatus) []FileStatus {
	var out []FileStatus

	for _, s := range statuses {
		if s.State != FileUpToDate {
			out = append(out, s)
		}
	}

	return out
}
