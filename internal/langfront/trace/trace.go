// Package trace accumulates the four side artifacts §4.9 calls for (the
// enumerated item-set dump, the ACTION/GOTO table dump, the per-step parse
// trace, and the error list) and writes them out once, rather than
// rewriting a file on every parse-loop iteration the way the Python
// reference implementation's work2.py does. Grounded on the Design Notes'
// "accumulate in memory and write once at the end" guidance and on the
// rosed-based table rendering already used by parse.Tables.String().
package trace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/langfront/internal/langfront/automaton"
	"github.com/dekarrin/langfront/internal/langfront/parse"
)

// Artifact names are fixed, per §4.9: "names fixed for test observability".
const (
	StatesFile  = "states.txt"
	TablesFile  = "parsing_tables.txt"
	ProcessFile = "parsing_process.txt"
	ErrorsFile  = "syntax_errors.txt"
)

// Writer accumulates the four artifacts in memory over the lifetime of one
// construction-plus-parse run and writes them to a directory on Flush.
type Writer struct {
	dir string

	states string
	tables string
	steps  []string
	errors []string
}

// NewWriter returns a Writer that will write its artifacts under dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// RecordStates renders coll's states (one item per line, grouped by state
// index) into the states.txt artifact.
func (w *Writer) RecordStates(coll *automaton.Collection) {
	var sb strings.Builder
	for i, state := range coll.States {
		fmt.Fprintf(&sb, "I%d:\n", i)
		for _, it := range state.Slice() {
			sb.WriteString("  ")
			sb.WriteString(it.String())
			sb.WriteString("\n")
		}
		if gotoRow, ok := coll.Goto[i]; ok {
			for _, sym := range sortedKeys(gotoRow) {
				fmt.Fprintf(&sb, "  goto(%s) = I%d\n", sym, gotoRow[sym])
			}
		}
		sb.WriteString("\n")
	}
	w.states = sb.String()
}

// RecordTables renders t's ACTION/GOTO tables plus any resolved
// shift/reduce conflicts into the parsing_tables.txt artifact (§4.6: "the
// conflict is reported via trace but is not fatal").
func (w *Writer) RecordTables(t *parse.Tables) {
	var sb strings.Builder
	sb.WriteString(t.String())
	sb.WriteString("\n")

	if conflicts := t.Conflicts(); len(conflicts) > 0 {
		sb.WriteString("\nresolved shift/reduce conflicts (shift wins):\n")
		for _, c := range conflicts {
			fmt.Fprintf(&sb, "  state %d, symbol %s: discarded %s\n", c.State, c.Symbol, c.Reduce.String())
		}
	}
	w.tables = sb.String()
}

// RecordStep appends one parse-driver step to the parsing_process.txt
// artifact (§4.9: "state, current token, stack, remaining input, chosen
// action").
func (w *Writer) RecordStep(step parse.Step) {
	stackStrs := make([]string, len(step.Stack))
	for i, s := range step.Stack {
		stackStrs[i] = fmt.Sprintf("%d", s)
	}

	action := "—"
	if step.Action.Kind != parse.NoAction {
		action = step.Action.String()
	}

	line := fmt.Sprintf(
		"state=%d token=%s(%q) stack=[%s] remaining=%d action=%s",
		step.StateBefore, step.Token.Terminal, step.Token.Lexeme,
		strings.Join(stackStrs, " "), step.Remaining, action,
	)
	w.steps = append(w.steps, line)
}

// RecordSteps appends an entire trace in one call, a convenience for
// callers that already have the full []parse.Step from a Result.
func (w *Writer) RecordSteps(steps []parse.Step) {
	for _, s := range steps {
		w.RecordStep(s)
	}
}

// RecordError appends one diagnostic to the syntax_errors.txt artifact
// (§6: exactly the fixed error-string forms).
func (w *Writer) RecordError(msg string) {
	w.errors = append(w.errors, msg)
}

// Flush writes the four artifacts to their fixed filenames under the
// Writer's directory, creating the directory if necessary. It writes each
// exactly once (Design Notes: no per-iteration rewrite), even if an
// artifact is empty.
func (w *Writer) Flush() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("creating trace directory: %w", err)
	}

	files := map[string]string{
		StatesFile:  w.states,
		TablesFile:  w.tables,
		ProcessFile: strings.Join(w.steps, "\n"),
		ErrorsFile:  strings.Join(w.errors, "\n"),
	}

	for name, content := range files {
		path := filepath.Join(w.dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}

	return nil
}

// Wrapped produces a single human-readable report combining the states and
// tables artifacts, in the rosed-wrapped style used elsewhere for CLI
// display (§1 AMBIENT STACK: "rosed ... exactly as
// parse.canonicalLR1Table.String() does in the teacher").
func (w *Writer) Wrapped(width int) string {
	return rosed.Edit(w.states + "\n" + w.tables).
		WordWrap(width).
		String()
}

func sortedKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
