package fastac

import (
	"errors"
	"testing"
)

func TestLibraryCacheDistinctPathStrings(t *testing.T) {
	reads := map[string]int{}
	libs := NewLibraryCache()
	libs.ReadFile = func(path string) ([]byte, error) {
		reads[path]++
		return []byte(">ref\nACGT\n"), nil
	}
	c := mustCompiler(t, Options{Libraries: libs})
	// same file, two spellings: cached as two entries, no canonicalization
	src := ">a\n$include ref --lib lib.fa\n\n>b\n$include ref --lib ./lib.fa\n"
	if _, err := c.Compile(src); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if reads["lib.fa"] != 1 || reads["./lib.fa"] != 1 {
		t.Fatalf("expected one read per spelling, got %v", reads)
	}
	if libs.Len() != 2 {
		t.Fatalf("expected 2 cache entries, got %d", libs.Len())
	}
}

func TestLibraryCacheRemembersFailures(t *testing.T) {
	reads := 0
	libs := NewLibraryCache()
	libs.ReadFile = func(path string) ([]byte, error) {
		reads++
		return nil, errors.New("disk on fire")
	}
	c := mustCompiler(t, Options{Libraries: libs})
	if _, err := c.Compile(">a\n$include ref --lib bad.fa\n"); !errors.Is(err, ErrLookup) {
		t.Fatalf("expected lookup error, got %v", err)
	}
	// a second compile against the same cache must not re-read
	c2 := mustCompiler(t, Options{Libraries: libs})
	if _, err := c2.Compile(">a\n$include ref --lib bad.fa\n"); !errors.Is(err, ErrLookup) {
		t.Fatalf("expected cached lookup error, got %v", err)
	}
	if reads != 1 {
		t.Fatalf("failed loads should be cached too, got %d reads", reads)
	}
}

func TestLibraryLoadCycleDetected(t *testing.T) {
	libs := NewLibraryCache()
	libs.ReadFile = func(path string) ([]byte, error) {
		// every library includes itself
		return []byte(">loop\n$include loop --lib " + path + "\n"), nil
	}
	c := mustCompiler(t, Options{Libraries: libs})
	_, err := c.Compile(">a\n$include loop --lib self.fa\n")
	if !errors.Is(err, ErrLookup) {
		t.Fatalf("expected lookup error for a load cycle, got %v", err)
	}
}

func TestNestedLibraryLoads(t *testing.T) {
	files := map[string]string{
		"outer.fa": ">outer\n$include inner --lib inner.fa\n",
		"inner.fa": ">inner\nGGGG\n",
	}
	libs := NewLibraryCache()
	libs.ReadFile = func(path string) ([]byte, error) {
		body, ok := files[path]
		if !ok {
			return nil, errors.New("missing")
		}
		return []byte(body), nil
	}
	c := mustCompiler(t, Options{Libraries: libs})
	ns, err := c.Compile(">a\n$include outer --lib outer.fa\n")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	b, _ := ns.Get("a")
	if b.Sequence != "gggg" {
		t.Fatalf("expected gggg through two library hops, got %q", b.Sequence)
	}
}
