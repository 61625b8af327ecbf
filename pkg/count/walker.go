package count

import (
	"os"

	"github.com/otuschhoff/linecount"
)

// FileInfo holds the count for a single file that was opened.
type FileInfo struct {
	Path  string // Path to the file
	Size  int64  // Size in bytes at stat time
	Lines int64  // Lines counted
}

// Results holds the aggregated outcome of a run.
type Results struct {
	Total   int64      // Sum of all counted lines, never negative
	Counted int64      // Files opened and read
	Skipped int64      // Files rejected by the extension filter
	Failed  int64      // Files that could not be opened or read completely
	Files   []FileInfo // Per-file counts, in visiting order
}

// CountWalker totals lines over a single file or a directory tree.
type CountWalker struct {
	path      string     // File or directory to count
	recursive bool       // Descend into subdirectories
	processor *Processor // Counts individual files
	results   *Results
}

// NewCountWalker creates a walker counting path with the given processor.
// The recursive flag only matters when path is a directory.
func NewCountWalker(path string, recursive bool, processor *Processor) *CountWalker {
	return &CountWalker{
		path:      path,
		recursive: recursive,
		processor: processor,
		results: &Results{
			Files: []FileInfo{},
		},
	}
}

// Walk counts the configured path and returns the results.
//
// A directory is walked with a linecount.Walker and every regular file it
// yields is processed; anything else is processed as a single file.
// Failures are logged by the processor and never stop the walk.
func (cw *CountWalker) Walk() *Results {
	info, err := os.Stat(cw.path)
	if err == nil && info.IsDir() {
		cw.walkDir()
	} else {
		cw.record(cw.processor.ProcessFile(cw.path), info)
	}
	return cw.results
}

// walkDir processes each regular file below the root directory.
func (cw *CountWalker) walkDir() {
	callbacks := linecount.Callbacks{
		OnReadDirError: func(path string, err error) {
			cw.processor.logf("Cannot read directory %s: %v", path, err)
		},
	}

	walker := linecount.NewWalker(cw.path, cw.recursive, callbacks)
	for path := range walker.Paths() {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		cw.record(cw.processor.ProcessFile(path), info)
	}
}

func (cw *CountWalker) record(res FileResult, info os.FileInfo) {
	switch {
	case res.Skipped:
		cw.results.Skipped++
		return
	case res.Err != nil:
		cw.results.Failed++
	default:
		cw.results.Counted++
	}

	cw.results.Total += res.Lines

	// Unopenable files have nothing to report.
	if res.Lines == 0 && res.Err != nil {
		return
	}

	fi := FileInfo{Path: res.Path, Lines: res.Lines}
	if info != nil {
		fi.Size = info.Size()
	}
	cw.results.Files = append(cw.results.Files, fi)
}
