package jsonscan

// Package jsonscan extracts balanced, parseable JSON values embedded in a
// line of text. Scanning is deliberately tolerant: a bracketed span that
// never decodes is ordinary text, not an error.

import (
	"encoding/json"
	"strings"
)

// Scan walks line left to right, buffering from the first opening bracket.
// Every closing bracket triggers a decode attempt on the buffer; success
// records the value and closes that match, failure keeps buffering so decoy
// braces like {this} only resolve once an enclosing bracket closes. It
// returns the decoded values and the line with every occurrence of each
// matched substring removed and the remainder re-spaced and trimmed.
func Scan(line string) ([]any, string) {
	var (
		values    []any
		matched   []string
		buf       []byte
		buffering bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch c {
		case '{', '[':
			buffering = true
		case '}', ']':
			buf = append(buf, c)
			if v, ok := tryDecode(buf); ok {
				values = append(values, v)
				matched = append(matched, string(buf))
				buf = buf[:0]
				buffering = false
			}
			continue
		}
		if buffering {
			buf = append(buf, c)
		}
	}
	out := line
	for _, m := range matched {
		out = strings.ReplaceAll(out, m, "")
	}
	// collapse the gaps the removals leave behind, so that a title like
	// `Foo {"a":1} bar` comes back as "Foo bar".
	return values, strings.Join(strings.Fields(out), " ")
}

func tryDecode(buf []byte) (any, bool) {
	var v any
	if err := json.Unmarshal(buf, &v); err != nil {
		return nil, false
	}
	return v, true
}
