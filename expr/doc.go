// Package expr implements the operand expressions of the symbolic 6502
// notation, and the address arithmetic performed on them.
//
// An operand such as `(label+X)` parses into a tree of Expr nodes. Paren
// marks a memory dereference, Bracket an indirect dereference through a
// zero page pointer, and SysOp the single character operators used for
// branch conditions, increments and stack operations.
//
// Resolved addresses keep track of whether they fit in the zero page, since
// that decides which addressing modes an instruction may use.
package expr
