package fastac

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"github.com/cathalgarvey/fastac/internal/jsonscan"
	"github.com/cathalgarvey/fastac/internal/sequtils"
)

// parseBlock compiles one trimmed, non-empty block of source text against
// the namespace compiled so far. Lines dispatch on their first character:
// '>' title, ';' markup, '#' discarded, '$' macro, anything else sequence.
func (c *Compiler) parseBlock(block string, ns *Namespace) (*Block, error) {
	var (
		title  string
		lines  []string
		seqLen int
		meta   = map[string]any{"comments": []any{}}
	)
	env := &Env{Namespace: ns, Tools: c.tools, LoadLibrary: c.Library}

	for _, raw := range strings.Split(block, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		switch line[0] {
		case '>':
			if title != "" {
				return nil, &FormatError{Message: "second title line in block"}
			}
			values, rest := jsonscan.Scan(line)
			for _, v := range values {
				if obj, ok := v.(map[string]any); ok {
					mergeMeta(meta, obj)
				}
			}
			title = strings.TrimSpace(strings.TrimPrefix(rest, ">"))

		case ';':
			comment, err := parseMarkup(line, seqLen)
			if err != nil {
				return nil, err
			}
			meta["comments"] = append(meta["comments"].([]any), comment)

		case '#':
			// unrecorded comment, dropped

		case '$':
			tokens, err := shell.Fields(line[1:], nil)
			if err != nil {
				return nil, &UsageError{Message: fmt.Sprintf("tokenizing macro line: %v", err)}
			}
			if len(tokens) == 0 {
				continue
			}
			macro, ok := c.macros.Lookup(tokens[0])
			if !ok {
				continue
			}
			result, err := macro.Run(tokens[1:], env)
			if err != nil {
				return nil, err
			}
			if result != "" {
				lines = append(lines, result)
				seqLen += len(result)
			}

		default:
			lines = append(lines, line)
			seqLen += len(line)
		}
	}

	if title == "" {
		return nil, &FormatError{Message: "no title found for this block"}
	}
	sequence := applyCase(strings.Join(lines, ""), c.casing)

	typ, ok := declaredType(meta)
	if !ok {
		typ = c.tools.DeduceAlphabet(sequence)
		meta["type"] = string(typ)
	}
	return &Block{Title: title, Sequence: sequence, Meta: meta, Type: typ}, nil
}

// parseMarkup handles a ';' line. A single well-typed {"comment":[s,e,text]}
// object is used verbatim; a line with no usable object becomes comment text
// anchored at the next residue position. More than one JSON object is a
// format error, as is a "comment" key whose value is not an (int,int,string)
// triple.
func parseMarkup(line string, seqLen int) ([]any, error) {
	values, _ := jsonscan.Scan(line)
	if len(values) > 1 {
		return nil, &FormatError{Message: "multiple JSON objects on markup line"}
	}
	if len(values) == 1 {
		if obj, ok := values[0].(map[string]any); ok {
			if raw, has := obj["comment"]; has {
				triple, err := commentTriple(raw)
				if err != nil {
					return nil, err
				}
				return triple, nil
			}
		}
	}
	pos := seqLen + 1
	text := strings.TrimSpace(strings.TrimPrefix(line, ";"))
	return []any{pos, pos, text}, nil
}

// commentTriple validates an explicit comment annotation: [start, end, text]
// with integer offsets and string text.
func commentTriple(raw any) ([]any, error) {
	seq, ok := raw.([]any)
	if !ok || len(seq) != 3 {
		return nil, &FormatError{Message: "malformed comment triple: want [start, end, text]"}
	}
	start, ok1 := asInt(seq[0])
	end, ok2 := asInt(seq[1])
	text, ok3 := seq[2].(string)
	if !ok1 || !ok2 || !ok3 {
		return nil, &FormatError{Message: "malformed comment triple: want [int, int, string]"}
	}
	return []any{start, end, text}, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func applyCase(s, policy string) string {
	switch policy {
	case CaseUpper:
		return strings.ToUpper(s)
	case CasePreserve:
		return s
	default:
		return strings.ToLower(s)
	}
}

func declaredType(meta map[string]any) (sequtils.Alphabet, bool) {
	tv, ok := meta["type"].(string)
	if !ok || tv == "" {
		return "", false
	}
	return sequtils.Alphabet(tv), true
}
