package fastac

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cathalgarvey/fastac/internal/sequtils"
)

// Env is what a macro invocation sees: the namespace of the block being
// compiled, the sequence tools, and a library loader backed by the run's
// cache. Handlers that invoke other handlers must pass the same Env through
// so library resolution stays consistent with the calling context.
type Env struct {
	Namespace   *Namespace
	Tools       SeqTools
	LoadLibrary func(path string) (*Namespace, error)
}

// Macro is a named directive invoked from a `$name args...` line. Run
// returns the text to append to the block's sequence accumulator; an empty
// result appends nothing.
type Macro interface {
	Name() string
	Run(args []string, env *Env) (string, error)
}

// Registry dispatches macro names to handlers.
type Registry struct {
	order  []string
	byName map[string]Macro
}

func NewRegistry(macros ...Macro) *Registry {
	r := &Registry{byName: make(map[string]Macro)}
	for _, m := range macros {
		r.Register(m)
	}
	return r
}

// Register adds or replaces a macro under its name.
func (r *Registry) Register(m Macro) {
	if _, ok := r.byName[m.Name()]; !ok {
		r.order = append(r.order, m.Name())
	}
	r.byName[m.Name()] = m
}

func (r *Registry) Lookup(name string) (Macro, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// Names returns registered macro names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Builtins returns a registry with the four standard macros.
func Builtins() *Registry {
	return NewRegistry(includeMacro{}, complementMacro{}, translateMacro{}, backtranslateMacro{})
}

// argSpec is the shared declarative schema for macro arguments: exactly one
// positional block name plus an enumerated set of --long options.
type argSpec struct {
	macro   string
	options []string
}

type macroArgs struct {
	block string
	opts  map[string]string
}

func (s argSpec) parse(args []string) (macroArgs, error) {
	parsed := macroArgs{opts: make(map[string]string)}
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if strings.HasPrefix(tok, "--") {
			name, val, hasVal := strings.Cut(strings.TrimPrefix(tok, "--"), "=")
			if !s.allows(name) {
				return parsed, &UsageError{Macro: s.macro, Message: fmt.Sprintf("unrecognized option --%s", name)}
			}
			if !hasVal {
				i++
				if i >= len(args) {
					return parsed, &UsageError{Macro: s.macro, Message: fmt.Sprintf("option --%s needs a value", name)}
				}
				val = args[i]
			}
			parsed.opts[name] = val
			continue
		}
		if parsed.block != "" {
			return parsed, &UsageError{Macro: s.macro, Message: fmt.Sprintf("unexpected argument %q", tok)}
		}
		parsed.block = tok
	}
	if parsed.block == "" {
		return parsed, &UsageError{Macro: s.macro, Message: "missing block_name"}
	}
	return parsed, nil
}

func (s argSpec) allows(name string) bool {
	for _, o := range s.options {
		if o == name {
			return true
		}
	}
	return false
}

// resolveSequence looks the block up in the calling namespace, or in the
// named library's namespace when --lib was given. Every built-in resolves
// through here, which is what keeps nested macro calls on the caller's Env.
func resolveSequence(block, lib string, env *Env) (string, error) {
	ns := env.Namespace
	if lib != "" {
		var err error
		ns, err = env.LoadLibrary(lib)
		if err != nil {
			return "", err
		}
	}
	return ns.Sequence(block)
}

type includeMacro struct{}

func (includeMacro) Name() string { return "include" }

func (includeMacro) Run(args []string, env *Env) (string, error) {
	parsed, err := argSpec{macro: "include", options: []string{"lib"}}.parse(args)
	if err != nil {
		return "", err
	}
	return resolveSequence(parsed.block, parsed.opts["lib"], env)
}

type complementMacro struct{}

func (complementMacro) Name() string { return "complement" }

// Run complements the included sequence and forces it lowercase regardless
// of the compiler's case policy.
func (complementMacro) Run(args []string, env *Env) (string, error) {
	parsed, err := argSpec{macro: "complement", options: []string{"lib"}}.parse(args)
	if err != nil {
		return "", err
	}
	seq, err := resolveSequence(parsed.block, parsed.opts["lib"], env)
	if err != nil {
		return "", err
	}
	return strings.ToLower(env.Tools.Complement(seq)), nil
}

type translateMacro struct{}

func (translateMacro) Name() string { return "translate" }

func (translateMacro) Run(args []string, env *Env) (string, error) {
	parsed, err := argSpec{macro: "translate", options: []string{"lib", "table"}}.parse(args)
	if err != nil {
		return "", err
	}
	seq, err := resolveSequence(parsed.block, parsed.opts["lib"], env)
	if err != nil {
		return "", err
	}
	table := tableOption(parsed)
	out, err := env.Tools.Translate(seq, table)
	if err != nil {
		return "", wrapTableErr(err, table)
	}
	return out, nil
}

type backtranslateMacro struct{}

func (backtranslateMacro) Name() string { return "dumb_backtranslate" }

func (backtranslateMacro) Run(args []string, env *Env) (string, error) {
	parsed, err := argSpec{macro: "dumb_backtranslate", options: []string{"lib", "table"}}.parse(args)
	if err != nil {
		return "", err
	}
	seq, err := resolveSequence(parsed.block, parsed.opts["lib"], env)
	if err != nil {
		return "", err
	}
	table := tableOption(parsed)
	out, err := env.Tools.DumbBacktranslate(seq, table)
	if err != nil {
		return "", wrapTableErr(err, table)
	}
	return out, nil
}

func tableOption(parsed macroArgs) string {
	if t, ok := parsed.opts["table"]; ok && t != "" {
		return t
	}
	return "table1"
}

func wrapTableErr(err error, table string) error {
	if errors.Is(err, sequtils.ErrUnknownTable) {
		return &LookupError{Resource: "codon table", Name: table, Err: err}
	}
	return err
}
