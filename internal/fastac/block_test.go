package fastac

import (
	"errors"
	"reflect"
	"testing"
)

func mustCompiler(t *testing.T, opts Options) *Compiler {
	t.Helper()
	c, err := NewCompiler(opts)
	if err != nil {
		t.Fatalf("NewCompiler failed: %v", err)
	}
	return c
}

func TestTitleLineMetadataExtraction(t *testing.T) {
	c := mustCompiler(t, Options{})
	ns, err := c.Compile(">Foo {\"a\":1} bar {\"b\":2}\nACGT\n")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	b, ok := ns.Get("Foo bar")
	if !ok {
		t.Fatalf("expected title %q, have %v", "Foo bar", ns.Titles())
	}
	if b.Meta["a"] != float64(1) || b.Meta["b"] != float64(2) {
		t.Fatalf("unexpected metadata: %#v", b.Meta)
	}
	if b.Sequence != "acgt" {
		t.Fatalf("expected lowercased sequence, got %q", b.Sequence)
	}
}

func TestSecondTitleLineIsFormatError(t *testing.T) {
	c := mustCompiler(t, Options{})
	_, err := c.Compile(">one\nACGT\n>two\n")
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestMissingTitleIsFormatError(t *testing.T) {
	c := mustCompiler(t, Options{})
	_, err := c.Compile("ACGT\nGGTT\n")
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestMarkupCommentTriple(t *testing.T) {
	c := mustCompiler(t, Options{})
	ns, err := c.Compile(">X\nACGT\n;{\"comment\":[1,4,\"ok\"]}\n")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	b, _ := ns.Get("X")
	if b.Sequence != "acgt" {
		t.Fatalf("markup line must not contribute sequence, got %q", b.Sequence)
	}
	comments := b.Meta["comments"].([]any)
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment, got %#v", comments)
	}
	want := []any{1, 4, "ok"}
	if !reflect.DeepEqual(comments[0], want) {
		t.Fatalf("expected %v, got %#v", want, comments[0])
	}
}

func TestMarkupFallbackPosition(t *testing.T) {
	c := mustCompiler(t, Options{})
	ns, err := c.Compile(">X\nACGT\n; binding site starts here\nGGTT\n")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	b, _ := ns.Get("X")
	comments := b.Meta["comments"].([]any)
	want := []any{5, 5, "binding site starts here"}
	if len(comments) != 1 || !reflect.DeepEqual(comments[0], want) {
		t.Fatalf("expected %v, got %#v", want, comments)
	}
	if b.Sequence != "acgtggtt" {
		t.Fatalf("unexpected sequence %q", b.Sequence)
	}
}

func TestMarkupMultipleJSONObjectsIsFormatError(t *testing.T) {
	c := mustCompiler(t, Options{})
	_, err := c.Compile(">X\n;{\"comment\":[1,1,\"a\"]} {\"comment\":[2,2,\"b\"]}\nACGT\n")
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestMarkupMalformedTripleIsFormatError(t *testing.T) {
	c := mustCompiler(t, Options{})
	_, err := c.Compile(">X\n;{\"comment\":[1,\"two\",\"text\"]}\nACGT\n")
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestHashLinesDiscarded(t *testing.T) {
	c := mustCompiler(t, Options{})
	ns, err := c.Compile(">X\n# scratch note\nACGT\n")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	b, _ := ns.Get("X")
	if b.Sequence != "acgt" {
		t.Fatalf("unexpected sequence %q", b.Sequence)
	}
	if comments := b.Meta["comments"].([]any); len(comments) != 0 {
		t.Fatalf("hash lines must not record comments: %#v", comments)
	}
}

func TestCasePolicies(t *testing.T) {
	for policy, want := range map[string]string{
		CaseLower:    "acgt",
		CaseUpper:    "ACGT",
		CasePreserve: "AcGt",
	} {
		c := mustCompiler(t, Options{Case: policy})
		ns, err := c.Compile(">X\nAcGt\n")
		if err != nil {
			t.Fatalf("compile failed under %s: %v", policy, err)
		}
		b, _ := ns.Get("X")
		if b.Sequence != want {
			t.Fatalf("policy %s: expected %q, got %q", policy, want, b.Sequence)
		}
	}
}

func TestInvalidCasePolicyRejected(t *testing.T) {
	if _, err := NewCompiler(Options{Case: "shouting"}); err == nil {
		t.Fatal("expected an error for an unknown case policy")
	}
}

func TestTypeDeducedAndWrittenBack(t *testing.T) {
	c := mustCompiler(t, Options{})
	ns, err := c.Compile(">dna block\nACGT\n\n>protein block\nMKQRST\n")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	d, _ := ns.Get("dna block")
	if string(d.Type) != "dna" || d.Meta["type"] != "dna" {
		t.Fatalf("expected deduced dna type in block and meta, got %v / %v", d.Type, d.Meta["type"])
	}
	p, _ := ns.Get("protein block")
	if string(p.Type) != "amino" {
		t.Fatalf("expected amino, got %v", p.Type)
	}
}

func TestDeclaredTypeWins(t *testing.T) {
	c := mustCompiler(t, Options{})
	ns, err := c.Compile(">X {\"type\":\"rna\"}\nACGT\n")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	b, _ := ns.Get("X")
	if string(b.Type) != "rna" {
		t.Fatalf("declared type should win over deduction, got %v", b.Type)
	}
}

func TestMergePolicy(t *testing.T) {
	target := map[string]any{
		"a":        1,
		"comments": []any{"x"},
		"refs":     map[string]any{"k1": "v1", "k2": "v2"},
	}
	mergeMeta(target, map[string]any{
		"a":        2,                                       // scalar/scalar: dropped
		"comments": []any{"y"},                              // both sequences: concatenated
		"refs":     map[string]any{"k2": "new", "k3": "v3"}, // both mappings: incoming wins per sub-key
		"fresh":    "inserted",                              // absent: inserted
		"mismatch": "scalar",
	})
	if target["a"] != 1 {
		t.Fatalf("scalar must not be clobbered, got %v", target["a"])
	}
	if !reflect.DeepEqual(target["comments"], []any{"x", "y"}) {
		t.Fatalf("sequences must concatenate, got %#v", target["comments"])
	}
	refs := target["refs"].(map[string]any)
	if refs["k1"] != "v1" || refs["k2"] != "new" || refs["k3"] != "v3" {
		t.Fatalf("mapping merge wrong: %#v", refs)
	}
	if target["fresh"] != "inserted" {
		t.Fatalf("missing inserted key: %#v", target)
	}
}

func TestMergePolicyTypeMismatchDropped(t *testing.T) {
	target := map[string]any{"seq": []any{1}}
	mergeMeta(target, map[string]any{"seq": "not a sequence"})
	if !reflect.DeepEqual(target["seq"], []any{1}) {
		t.Fatalf("type mismatch must leave target unchanged, got %#v", target["seq"])
	}
}
