package count

import (
	"io"
	"log"
	"os"
)

// Processor counts the lines of individual files.
//
// Open and read failures are written to Log and never returned: a file that
// cannot be opened contributes 0, a file that fails mid-read contributes the
// lines counted before the failure.
type Processor struct {
	BufferSize int         // Read chunk size in bytes
	SkipEmpty  bool        // Count only lines with non-whitespace content
	Filter     *Filter     // Files not matching are skipped without opening
	Log        *log.Logger // Diagnostics sink
}

// NewProcessor creates a Processor using the default extension filter and
// writing diagnostics to errOut.
func NewProcessor(bufSize int, skipEmpty bool, errOut io.Writer) *Processor {
	return &Processor{
		BufferSize: bufSize,
		SkipEmpty:  skipEmpty,
		Filter:     DefaultFilter(),
		Log:        log.New(errOut, "", 0),
	}
}

// FileResult is the outcome of processing a single file.
type FileResult struct {
	Path    string // Path as given to ProcessFile
	Lines   int64  // Lines counted (0 when skipped or unopenable)
	Skipped bool   // True when the extension filter rejected the path
	Err     error  // Open or read error, already logged
}

// ProcessFile counts the lines of path.
func (p *Processor) ProcessFile(path string) FileResult {
	res := FileResult{Path: path}

	if p.Filter != nil && !p.Filter.Matches(path) {
		res.Skipped = true
		return res
	}

	f, err := os.Open(path)
	if err != nil {
		p.logf("Cannot open %s: %v", path, err)
		res.Err = err
		return res
	}
	defer f.Close()

	res.Lines, res.Err = p.count(f)
	if res.Err != nil {
		p.logf("Read error: %s: %v", path, res.Err)
	}
	return res
}

func (p *Processor) count(r io.Reader) (int64, error) {
	if p.SkipEmpty {
		return CountNonEmptyLines(r, p.BufferSize)
	}
	return CountLines(r, p.BufferSize)
}

func (p *Processor) logf(format string, args ...any) {
	if p.Log != nil {
		p.Log.Printf(format, args...)
	}
}
