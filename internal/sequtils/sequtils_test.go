package sequtils

import (
	"errors"
	"testing"
)

func TestDeduceAlphabet(t *testing.T) {
	cases := []struct {
		seq  string
		want Alphabet
	}{
		{"ACGT", DNA},
		{"acgtn-", DNA},
		{"ACGU", RNA},
		{"MKQRST", Amino},
		{"", DNA},
	}
	for _, c := range cases {
		if got := DeduceAlphabet(c.seq); got != c.want {
			t.Fatalf("DeduceAlphabet(%q) = %v, want %v", c.seq, got, c.want)
		}
	}
}

func TestComplement(t *testing.T) {
	if got := Complement("ACGT"); got != "TGCA" {
		t.Fatalf("expected TGCA, got %q", got)
	}
	if got := Complement("acgu"); got != "tgca" {
		t.Fatalf("expected tgca, got %q", got)
	}
	// case preserved per position
	if got := Complement("AcGt"); got != "TgCa" {
		t.Fatalf("expected TgCa, got %q", got)
	}
	if got := Complement("AZ"); got != "Tx" {
		t.Fatalf("unknown letters should complement to x, got %q", got)
	}
}

func TestTranslate(t *testing.T) {
	got, err := Translate("ATGAAATAA", "table1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "MK*" {
		t.Fatalf("expected MK*, got %q", got)
	}
	// uracil read as thymine, trailing partial codon dropped
	got, err = Translate("AUGAAAC", "table1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "MK" {
		t.Fatalf("expected MK, got %q", got)
	}
}

func TestTranslateUnknownTable(t *testing.T) {
	if _, err := Translate("ATG", "table99"); !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("expected ErrUnknownTable, got %v", err)
	}
	if _, err := DumbBacktranslate("M", "table99"); !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("expected ErrUnknownTable, got %v", err)
	}
}

func TestDumbBacktranslateDeterministic(t *testing.T) {
	a, err := DumbBacktranslate("MKL", "table1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := DumbBacktranslate("MKL", "table1")
	if a != b {
		t.Fatalf("back-translation not deterministic: %q vs %q", a, b)
	}
	if len(a) != 9 {
		t.Fatalf("expected one codon per residue, got %q", a)
	}
	// back-translating then translating must restore the residues
	fwd, err := Translate(a, "table1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fwd != "MKL" {
		t.Fatalf("round trip broke: %q -> %q", a, fwd)
	}
}
