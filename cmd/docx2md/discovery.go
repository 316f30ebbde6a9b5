package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	docx2md "github.com/alnah/go-docx2md"
	"github.com/alnah/go-docx2md/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrNoFiles            = errors.New("no .docx or markdown files found")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath string
	OutputDir string // outputs go to OutputDir/<stem>/
	Stem      string
}

// discoverFiles finds every supported source under inputPath. A single
// file is returned as is; directories are walked recursively.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}
	if err := validateOutputDir(outputDir); err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !docx2md.IsSupported(inputPath) {
			return nil, fmt.Errorf("%w: %s", docx2md.ErrUnsupportedInput, inputPath)
		}
		return []FileToConvert{newFileToConvert(inputPath, outputDir, "")}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != inputPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if skipFile(path) {
			return nil
		}
		files = append(files, newFileToConvert(path, outputDir, inputPath))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, inputPath)
	}
	return files, nil
}

// validateOutputDir rejects an output directory that already exists as
// something other than a directory. A missing directory is created later.
func validateOutputDir(dir string) error {
	if dir == "" || fileutil.DirExists(dir) {
		return nil
	}
	if _, err := os.Lstat(dir); err == nil {
		return fmt.Errorf("%w: %s is not a directory", docx2md.ErrOutputWrite, dir)
	}
	return nil
}

// skipFile reports whether a walked file is not a conversion source:
// unsupported extensions, Word lock files (~$name.docx) and markdown this
// tool wrote earlier (<stem>/<stem>.md).
func skipFile(path string) bool {
	if !docx2md.IsSupported(path) {
		return true
	}
	name := filepath.Base(path)
	if strings.HasPrefix(name, "~$") {
		return true
	}
	if strings.EqualFold(filepath.Ext(path), docx2md.ExtDocx) {
		return false
	}
	return filepath.Base(filepath.Dir(path)) == stem(path)
}

func newFileToConvert(inputPath, outputDir, baseInputDir string) FileToConvert {
	return FileToConvert{
		InputPath: inputPath,
		OutputDir: resolveOutputDir(inputPath, outputDir, baseInputDir),
		Stem:      stem(inputPath),
	}
}

// resolveOutputDir determines the directory <stem>/ is created in.
// Without an output directory, outputs go next to the source. With one,
// the source tree below baseInputDir is mirrored.
func resolveOutputDir(inputPath, outputDir, baseInputDir string) string {
	if outputDir == "" {
		return filepath.Dir(inputPath)
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath))
		}
	}

	return outputDir
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > docx2md.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, docx2md.MaxPoolSize)
	}
	return nil
}
