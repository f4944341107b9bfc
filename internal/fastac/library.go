package fastac

import (
	"os"
	"sync"
)

// LibraryCache memoizes compiled libraries by path so each file is read and
// compiled once per run. Keys are the literal path strings given to macros;
// two spellings of the same file cache separately. Entries are never
// invalidated mid-run.
//
// Population is single-flight: concurrent requests for an uncached path
// block until the first compile finishes rather than compiling twice.
type LibraryCache struct {
	// ReadFile is the file-read hook; tests replace it to count reads or to
	// serve fixtures without touching the filesystem. Nil means os.ReadFile.
	ReadFile func(path string) ([]byte, error)

	mu      sync.Mutex
	entries map[string]*libEntry
}

type libEntry struct {
	once sync.Once
	ns   *Namespace
	err  error
}

func NewLibraryCache() *LibraryCache {
	return &LibraryCache{entries: make(map[string]*libEntry)}
}

func (lc *LibraryCache) readFile(path string) ([]byte, error) {
	if lc.ReadFile != nil {
		return lc.ReadFile(path)
	}
	return os.ReadFile(path)
}

// GetOrCompile returns the namespace cached for path, compiling it with
// compile on first reference. A failed compile is cached too; every later
// reference reports the same error.
func (lc *LibraryCache) GetOrCompile(path string, compile func(path string) (*Namespace, error)) (*Namespace, error) {
	lc.mu.Lock()
	e, ok := lc.entries[path]
	if !ok {
		e = &libEntry{}
		lc.entries[path] = e
	}
	lc.mu.Unlock()
	e.once.Do(func() {
		e.ns, e.err = compile(path)
	})
	return e.ns, e.err
}

// Len reports how many distinct path strings have been requested.
func (lc *LibraryCache) Len() int {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return len(lc.entries)
}
