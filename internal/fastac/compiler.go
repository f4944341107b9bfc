package fastac

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// Letter-case policies for compiled sequences.
const (
	CaseLower    = "lower"
	CaseUpper    = "upper"
	CasePreserve = "preserve"
)

// DefaultLineWrap is the column width exports wrap sequences at when the
// caller does not choose one.
const DefaultLineWrap = 50

// Options configures a Compiler. Zero values pick the defaults: lowercase
// sequences, the built-in macro registry, sequtils-backed tools and a fresh
// library cache.
type Options struct {
	Case      string
	Macros    *Registry
	Tools     SeqTools
	Libraries *LibraryCache
}

// Compiler turns fastac source text into a Namespace of compiled blocks.
// The library cache it owns spans every compile the instance performs;
// nested compilers created for library loads share it.
type Compiler struct {
	casing  string
	macros  *Registry
	tools   SeqTools
	libs    *LibraryCache
	loading []string // library paths on the current load chain, for cycle detection
}

func NewCompiler(opts Options) (*Compiler, error) {
	casing := opts.Case
	if casing == "" {
		casing = CaseLower
	}
	switch casing {
	case CaseLower, CaseUpper, CasePreserve:
	default:
		return nil, fmt.Errorf("letter case must be %q, %q or %q, got %q", CaseLower, CaseUpper, CasePreserve, opts.Case)
	}
	macros := opts.Macros
	if macros == nil {
		macros = Builtins()
	}
	tools := opts.Tools
	if tools == nil {
		tools = StdTools{}
	}
	libs := opts.Libraries
	if libs == nil {
		libs = NewLibraryCache()
	}
	return &Compiler{casing: casing, macros: macros, tools: tools, libs: libs}, nil
}

// Libraries exposes the compiler's library cache, mainly so callers can
// install a read hook or reset state between runs.
func (c *Compiler) Libraries() *LibraryCache { return c.libs }

// Compile splits text on blank-line boundaries and compiles each block in
// order into a fresh Namespace. Any block failure aborts the whole call.
func (c *Compiler) Compile(text string) (*Namespace, error) {
	return c.compile(text, "<input>")
}

// CompileFile reads path in full and compiles it.
func (c *Compiler) CompileFile(path string) (*Namespace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.compile(string(data), path)
}

func (c *Compiler) compile(text, source string) (*Namespace, error) {
	ns := NewNamespace()
	text = strings.ReplaceAll(text, "\r\n", "\n")
	blockNo := 0
	for _, segment := range strings.Split(strings.TrimSpace(text), "\n\n") {
		block := strings.TrimSpace(segment)
		if block == "" {
			continue
		}
		blockNo++
		compiled, err := c.parseBlock(block, ns)
		if err != nil {
			return nil, &CompileError{Source: source, Block: blockNo, Err: err}
		}
		ns.Register(compiled)
	}
	return ns, nil
}

// Library resolves a library path through the run's cache, compiling the
// file with a nested compiler on first reference.
func (c *Compiler) Library(path string) (*Namespace, error) {
	if slices.Contains(c.loading, path) {
		return nil, &LookupError{Resource: "library", Name: path,
			Err: fmt.Errorf("library load cycle: %s", strings.Join(append(c.loading, path), " -> "))}
	}
	return c.libs.GetOrCompile(path, c.compileLibrary)
}

func (c *Compiler) compileLibrary(path string) (*Namespace, error) {
	data, err := c.libs.readFile(path)
	if err != nil {
		return nil, &LookupError{Resource: "library", Name: path, Err: err}
	}
	nested := &Compiler{
		casing:  c.casing,
		macros:  c.macros,
		tools:   c.tools,
		libs:    c.libs,
		loading: append(slices.Clone(c.loading), path),
	}
	return nested.compile(string(data), path)
}
