package fastac

import (
	"github.com/cathalgarvey/fastac/internal/sequtils"
)

// SeqTools is the sequence-operations collaborator the compiler consumes.
// The compiler never inspects residues itself; alphabet deduction and the
// macro transforms all go through this interface.
type SeqTools interface {
	DeduceAlphabet(seq string) sequtils.Alphabet
	Complement(seq string) string
	Translate(seq, tableName string) (string, error)
	DumbBacktranslate(seq, tableName string) (string, error)
}

// StdTools backs SeqTools with the sequtils package.
type StdTools struct{}

func (StdTools) DeduceAlphabet(seq string) sequtils.Alphabet { return sequtils.DeduceAlphabet(seq) }

func (StdTools) Complement(seq string) string { return sequtils.Complement(seq) }

func (StdTools) Translate(seq, tableName string) (string, error) {
	return sequtils.Translate(seq, tableName)
}

func (StdTools) DumbBacktranslate(seq, tableName string) (string, error) {
	return sequtils.DumbBacktranslate(seq, tableName)
}
