// Package label maintains the assembler's label namespace.
//
// Three kinds of label share one table. Global labels open a new scope.
// Local labels, spelled with a leading '.', are stored qualified by the
// most recent global label. Labels generated by the macro expander start
// with "#macro_" and are stored as-is without opening a scope.
package label

import (
	"cmp"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/ezrec/sym6502/expr"
)

// MacroPrefix starts every label generated by the macro expander.
const MacroPrefix = "#macro_"

// Entry is a single label definition.
type Entry struct {
	Name    string       // Fully qualified name.
	LineNo  int          // Line of definition, for diagnostics.
	Address expr.Address // Current address of the label.
}

// Table maps fully qualified label names to their entries.
type Table struct {
	entries map[string]*Entry
	current string
}

// IsLocal returns true for a '.' scoped label name.
func IsLocal(name string) bool {
	return strings.HasPrefix(name, ".")
}

// IsMacro returns true for a macro expander generated label name.
func IsMacro(name string) bool {
	return strings.HasPrefix(name, MacroPrefix)
}

// IsGlobal returns true for a label name that opens a new scope.
func IsGlobal(name string) bool {
	return len(name) > 0 && !IsLocal(name) && !IsMacro(name)
}

// Current returns the most recently defined global label.
func (tbl *Table) Current() string {
	return tbl.current
}

// Qualify returns the table key for a label reference made in the scope of
// the current global label.
func (tbl *Table) Qualify(name string) (qualified string, err error) {
	if !IsLocal(name) {
		qualified = name
		return
	}
	if len(tbl.current) == 0 {
		err = ErrGlobalLabelMissing(name)
		return
	}
	qualified = tbl.current + name
	return
}

// Define adds a label seen on line lineNo at program counter pc, and returns
// its fully qualified name. Defining an existing name is always an error.
func (tbl *Table) Define(name string, lineNo int, pc uint16) (qualified string, err error) {
	qualified, err = tbl.Qualify(name)
	if err != nil {
		return
	}

	if tbl.entries == nil {
		tbl.entries = make(map[string]*Entry, 16)
	}

	if prior, ok := tbl.entries[qualified]; ok {
		err = &ErrLabelDuplicate{Name: qualified, LineNo: lineNo, PriorLineNo: prior.LineNo}
		return
	}

	tbl.entries[qualified] = &Entry{
		Name:    qualified,
		LineNo:  lineNo,
		Address: expr.Full(pc),
	}

	if IsGlobal(name) {
		tbl.current = name
	}

	return
}

// Fix overwrites the address of an already defined label.
func (tbl *Table) Fix(qualified string, addr expr.Address) (err error) {
	entry, ok := tbl.entries[qualified]
	if !ok {
		err = expr.ErrLabelMissing(qualified)
		return
	}
	entry.Address = addr
	return
}

// Enter tracks the scope of a label without defining it, as pass 2 does.
func (tbl *Table) Enter(name string) {
	if IsGlobal(name) {
		tbl.current = name
	}
}

// Reset forgets the current scope, keeping all entries.
func (tbl *Table) Reset() {
	tbl.current = ""
}

// Get returns the entry of a fully qualified label.
func (tbl *Table) Get(qualified string) (entry Entry, ok bool) {
	ptr, ok := tbl.entries[qualified]
	if ok {
		entry = *ptr
	}
	return
}

// Lookup resolves a label reference in the current scope. A local label
// outside of any global scope fails with ErrGlobalLabelMissing, and an
// undefined label with expr.ErrLabelMissing.
func (tbl *Table) Lookup(name string) (addr expr.Address, err error) {
	qualified, err := tbl.Qualify(name)
	if err != nil {
		return
	}
	entry, ok := tbl.entries[qualified]
	if !ok {
		err = expr.ErrLabelMissing(qualified)
		return
	}
	addr = entry.Address
	return
}

var _ expr.Labels = (*Table)(nil)

// Len returns the number of labels defined.
func (tbl *Table) Len() int {
	return len(tbl.entries)
}

// Entries returns all entries, in address then name order.
func (tbl *Table) Entries() iter.Seq[Entry] {
	sorted := slices.SortedFunc(maps.Values(tbl.entries), func(a, b *Entry) int {
		return cmp.Or(cmp.Compare(a.Address.Value, b.Address.Value), cmp.Compare(a.Name, b.Name))
	})
	return func(yield func(Entry) bool) {
		for _, entry := range sorted {
			if !yield(*entry) {
				return
			}
		}
	}
}
