// Package linecount provides the directory traversal used by the linecount tool.
//
// A Walker produces a lazy, finite sequence of candidate paths below a root
// directory. Two strategies are available:
//
//   - Shallow: only the immediate entries of the root directory.
//   - Recursive: the whole subtree, depth-first.
//
// Recursive traversal keeps its pending paths on an explicit stack instead
// of recursing on the call stack, so arbitrarily deep trees do not grow the
// goroutine stack. Symbolic links to directories are followed and no cycle
// detection is performed: a link cycle makes a recursive walk unbounded.
//
// Basic usage:
//
//	walker := linecount.NewWalker(".", true, linecount.Callbacks{
//		OnReadDirError: func(path string, err error) {
//			log.Printf("Cannot read directory %s: %v", path, err)
//		},
//	})
//	for path := range walker.Paths() {
//		// Process path
//	}
//
// A Walker is consumed exactly once. It is not safe for concurrent use.
package linecount

import (
	"iter"
	"os"
	"path/filepath"
)

// Callbacks define optional handlers that are invoked during the walk.
// All callbacks are optional (zero value means no callback).
type Callbacks struct {
	// OnReadDirError is called when a directory cannot be listed, or when a
	// listing stops part way. Entries read before the failure are still walked.
	OnReadDirError func(path string, err error)
}

// Walker enumerates candidate paths below a root directory.
type Walker struct {
	rootPath  string
	recursive bool
	callbacks Callbacks

	// Pending paths, last pushed is popped first.
	stack   []string
	started bool
}

// NewWalker creates a new Walker for the given root path.
//
// When recursive is false only the immediate entries of rootPath are
// yielded, subdirectories included. When recursive is true every
// non-directory path of the subtree is yielded. The rootPath is cleaned
// using filepath.Clean before being stored.
func NewWalker(rootPath string, recursive bool, callbacks Callbacks) *Walker {
	return &Walker{
		rootPath:  filepath.Clean(rootPath),
		recursive: recursive,
		callbacks: callbacks,
	}
}

// stackPush adds a path to the pending stack.
func (w *Walker) stackPush(path string) {
	w.stack = append(w.stack, path)
}

// stackPop removes and returns the last pushed path, or false if the stack
// is empty.
func (w *Walker) stackPop() (string, bool) {
	if len(w.stack) == 0 {
		return "", false
	}
	path := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	return path, true
}

// start seeds the stack on the first call to Next.
func (w *Walker) start() {
	w.started = true

	if w.recursive {
		w.stackPush(w.rootPath)
		return
	}

	// Entries are pushed in reverse so the listing order is kept when popped.
	entries := w.readDir(w.rootPath)
	for i := len(entries) - 1; i >= 0; i-- {
		w.stackPush(filepath.Join(w.rootPath, entries[i].Name()))
	}
}

// Next returns the next candidate path. The second result is false once
// the sequence is exhausted; further calls keep returning false.
func (w *Walker) Next() (string, bool) {
	if !w.started {
		w.start()
	}

	for {
		path, ok := w.stackPop()
		if !ok {
			return "", false
		}

		if !w.recursive {
			return path, true
		}

		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			return path, true
		}

		for _, entry := range w.readDir(path) {
			w.stackPush(filepath.Join(path, entry.Name()))
		}
	}
}

// Paths returns the remaining paths as a single-use sequence.
func (w *Walker) Paths() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			path, ok := w.Next()
			if !ok || !yield(path) {
				return
			}
		}
	}
}

// readDir lists a directory. A failed or partial listing is reported via
// OnReadDirError and whatever was read is returned.
func (w *Walker) readDir(path string) []os.DirEntry {
	entries, err := os.ReadDir(path)
	if err != nil && w.callbacks.OnReadDirError != nil {
		w.callbacks.OnReadDirError(path, err)
	}
	return entries
}
