package fastac

import (
	"encoding/json"
	"fmt"
	"strings"
)

// wrapSequence re-wraps seq at width columns. Width <= 0 leaves the sequence
// on one line.
func wrapSequence(seq string, width int) string {
	if width <= 0 || len(seq) <= width {
		return seq
	}
	var chunks []string
	for i := 0; i < len(seq); i += width {
		end := i + width
		if end > len(seq) {
			end = len(seq)
		}
		chunks = append(chunks, seq[i:end])
	}
	return strings.Join(chunks, "\n")
}

// FastaList renders each block as plain FASTA ("> title" plus the wrapped
// sequence), discarding metadata, in namespace order.
func (ns *Namespace) FastaList(width int) []string {
	out := make([]string, 0, len(ns.blocks))
	for _, b := range ns.blocks {
		out = append(out, fmt.Sprintf("> %s\n%s", b.Title, wrapSequence(b.Sequence, width)))
	}
	return out
}

// Fasta renders the whole namespace as plain FASTA with blank lines between
// blocks.
func (ns *Namespace) Fasta(width int) string {
	return strings.Join(ns.FastaList(width), "\n\n")
}

// MetaFastaList renders each block with its metadata JSON-serialized after
// the title, so the output is lossless yet superficially FASTA-compatible.
func (ns *Namespace) MetaFastaList(width int) ([]string, error) {
	out := make([]string, 0, len(ns.blocks))
	for _, b := range ns.blocks {
		blob, err := json.Marshal(b.Meta)
		if err != nil {
			return nil, fmt.Errorf("serializing metadata for %q: %w", b.Title, err)
		}
		out = append(out, fmt.Sprintf("> %s %s\n%s", b.Title, blob, wrapSequence(b.Sequence, width)))
	}
	return out, nil
}

// MetaFasta renders the whole namespace as metafasta. Compiling the result
// reproduces the namespace: titles, sequences and metadata survive the round
// trip.
func (ns *Namespace) MetaFasta(width int) (string, error) {
	blocks, err := ns.MetaFastaList(width)
	if err != nil {
		return "", err
	}
	return strings.Join(blocks, "\n\n"), nil
}

// DocumentBlock is the structured-export form of one block.
type DocumentBlock struct {
	Title    string         `json:"title"`
	Sequence string         `json:"sequence"`
	Meta     map[string]any `json:"meta"`
	Type     string         `json:"type"`
}

// Document returns the structured mapping title -> block for JSON export.
func (ns *Namespace) Document() map[string]DocumentBlock {
	doc := make(map[string]DocumentBlock, len(ns.blocks))
	for _, b := range ns.blocks {
		doc[b.Title] = DocumentBlock{
			Title:    b.Title,
			Sequence: b.Sequence,
			Meta:     b.Meta,
			Type:     string(b.Type),
		}
	}
	return doc
}
