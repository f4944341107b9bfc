package sequtils

// Package sequtils provides the biological sequence operations the compiler
// consumes: alphabet deduction, complementation, codon-table translation and
// deterministic back-translation. It has no knowledge of the fastac format.

import (
	"errors"
	"fmt"
	"strings"
)

// Alphabet identifies the residue alphabet of a sequence.
type Alphabet string

const (
	DNA   Alphabet = "dna"
	RNA   Alphabet = "rna"
	Amino Alphabet = "amino"
)

// ErrUnknownTable is returned when a codon table name is not recognised.
var ErrUnknownTable = errors.New("unknown codon table")

// DeduceAlphabet guesses the alphabet from letter content. Sequences made of
// unambiguous nucleotides (plus N and gap dashes) are called DNA, or RNA when
// uracil appears instead of thymine; anything else is treated as amino acids.
func DeduceAlphabet(seq string) Alphabet {
	hasT, hasU := false, false
	for _, r := range strings.ToLower(seq) {
		switch r {
		case 'a', 'c', 'g', 'n', '-':
		case 't':
			hasT = true
		case 'u':
			hasU = true
		default:
			return Amino
		}
	}
	if hasU && !hasT {
		return RNA
	}
	return DNA
}

// complements maps each nucleotide to its complement, case intact. Uracil is
// handled alongside thymine so RNA input complements without conversion.
var complements = map[rune]rune{
	'a': 't', 'A': 'T',
	't': 'a', 'T': 'A',
	'g': 'c', 'G': 'C',
	'c': 'g', 'C': 'G',
	'u': 'a', 'U': 'A',
	'n': 'n', 'N': 'N',
	'-': '-',
}

// Complement returns the base-wise complement of seq, preserving case and
// position. Unrecognised letters come back as 'x'.
func Complement(seq string) string {
	runes := []rune(seq)
	for i, r := range runes {
		c, ok := complements[r]
		if !ok {
			c = 'x'
		}
		runes[i] = c
	}
	return string(runes)
}

// table1 is the standard genetic code, keyed by uppercase DNA codon.
var table1 = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

var codonTables = map[string]map[string]byte{
	"table1": table1,
}

// backTables holds one representative codon per residue for each table,
// chosen as the lexicographically smallest coding codon so back-translation
// is deterministic.
var backTables = map[string]map[byte]string{}

func init() {
	for name, tbl := range codonTables {
		back := make(map[byte]string)
		for codon, aa := range tbl {
			if prev, ok := back[aa]; !ok || codon < prev {
				back[aa] = codon
			}
		}
		backTables[name] = back
	}
}

// Translate converts a nucleotide sequence into amino acids using the named
// codon table. Uracil is read as thymine, codons with unrecognised letters
// yield 'X', stop codons yield '*', and a trailing partial codon is dropped.
func Translate(seq, tableName string) (string, error) {
	tbl, ok := codonTables[tableName]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTable, tableName)
	}
	norm := strings.ToUpper(seq)
	norm = strings.ReplaceAll(norm, "U", "T")
	var out strings.Builder
	for i := 0; i+3 <= len(norm); i += 3 {
		aa, ok := tbl[norm[i:i+3]]
		if !ok {
			aa = 'X'
		}
		out.WriteByte(aa)
	}
	return out.String(), nil
}

// DumbBacktranslate converts an amino acid sequence back into nucleotides
// using one fixed codon per residue from the named table. Residues with no
// codon in the table come back as "NNN".
func DumbBacktranslate(seq, tableName string) (string, error) {
	back, ok := backTables[tableName]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTable, tableName)
	}
	var out strings.Builder
	for _, r := range strings.ToUpper(seq) {
		codon, ok := back[byte(r)]
		if !ok {
			codon = "NNN"
		}
		out.WriteString(codon)
	}
	return out.String(), nil
}
