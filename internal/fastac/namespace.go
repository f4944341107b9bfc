package fastac

import (
	"github.com/cathalgarvey/fastac/internal/sequtils"
)

// Block is one compiled fastac unit: a title, its case-normalized residue
// sequence, and accumulated metadata. Blocks are created by the block parser
// and never mutated afterwards.
type Block struct {
	Title    string
	Sequence string
	Meta     map[string]any
	Type     sequtils.Alphabet
}

// Namespace is an ordered collection of compiled blocks keyed by title.
// Iteration order is compilation order, which keeps exports deterministic.
type Namespace struct {
	blocks []*Block
	index  map[string]int
}

func NewNamespace() *Namespace {
	return &Namespace{index: make(map[string]int)}
}

// Register adds a block under its title. A duplicate title overwrites the
// prior entry in place, keeping its original position (last write wins).
func (ns *Namespace) Register(b *Block) {
	if i, ok := ns.index[b.Title]; ok {
		ns.blocks[i] = b
		return
	}
	ns.index[b.Title] = len(ns.blocks)
	ns.blocks = append(ns.blocks, b)
}

// Get returns the block registered under title.
func (ns *Namespace) Get(title string) (*Block, bool) {
	i, ok := ns.index[title]
	if !ok {
		return nil, false
	}
	return ns.blocks[i], true
}

// Sequence returns the sequence of the named block, or a LookupError naming
// the titles that are available.
func (ns *Namespace) Sequence(title string) (string, error) {
	b, ok := ns.Get(title)
	if !ok {
		return "", &LookupError{Resource: "block", Name: title, Available: ns.Titles()}
	}
	return b.Sequence, nil
}

// Blocks returns the registered blocks in compilation order. The returned
// slice is shared; callers must not modify it.
func (ns *Namespace) Blocks() []*Block { return ns.blocks }

// Titles returns the registered titles in compilation order.
func (ns *Namespace) Titles() []string {
	titles := make([]string, len(ns.blocks))
	for i, b := range ns.blocks {
		titles[i] = b.Title
	}
	return titles
}

func (ns *Namespace) Len() int { return len(ns.blocks) }
