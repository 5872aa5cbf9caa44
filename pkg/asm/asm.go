package asm

// ----------------------------------------------------------------------------
// General information

// This section holds the in-memory AST the goparsec-based Parser produces: one
// Statement per cleaned source line, in source order. Nothing here is resolved
// yet — addresses, label targets and variable slots are all still symbolic.
// That resolution happens downstream, in the Resolver (lowering.go): a label
// can be referenced before its declaration line, so binding it can't happen in
// the same pass that walks these Statements to emit instructions; the AST
// stays a flat, unresolved sequence precisely so two independent passes can
// walk it without either one mutating state the other depends on.

// Statement is the common type of every parsed line: a LabelDecl, an
// AInstruction or a CInstruction. Kept as an empty interface (as the Resolver
// type-switches on the concrete type anyway) rather than a tagged union.
type Statement interface{}

// Program is a whole parsed source file: every Statement in source order,
// still unresolved. Instruction is the same type under the name the Parser and
// Resolver use when they're handling one line at a time rather than the
// sequence as a whole — both are aliases (of []Statement and Statement), not
// distinct types, so a Program is interchangeable with a []Instruction at every
// call site.
type Program = []Statement
type Instruction = Statement

// ----------------------------------------------------------------------------
// Label Declarations

// LabelDecl is a zero-width marker in the instruction stream: it occupies no
// program counter slot and emits no machine word. Resolver.ResolvePass1Labels
// walks the Statement sequence once, counting only AInstruction/CInstruction,
// and binds Name to whatever program counter value it reaches at each
// LabelDecl — which is why a forward reference to a not-yet-declared label
// works: the full label pass always finishes before any AInstruction gets
// lowered.
type LabelDecl struct {
	Name string // user-chosen label identifier, unique across the program
}

// ----------------------------------------------------------------------------
// A Instructions

// AInstruction loads a 15-bit address into the A register; Location is still
// the raw textual symbol at this stage — a decimal literal, a predefined name
// (pkg/hack.BuiltInTable) or a user label/variable. Resolver.HandleAInst
// classifies Location into hack.Raw/BuiltIn/Label only after both resolution
// passes have run, so by then every Label reference is guaranteed to have an
// address sitting in the SymbolTable.
type AInstruction struct {
	Location string // decimal literal, built-in name, or label/variable identifier
}

// ----------------------------------------------------------------------------
// C Instructions

// CInstruction is the compute-and-optionally-store-and-jump instruction. Comp
// is mandatory; Dest and Jump are each independently optional — a C
// Instruction can carry both at once ('MD=D+1;JGT' is valid Hack assembly),
// since DestTable[""] and JumpTable[""] are themselves valid zero encodings in
// pkg/hack. Resolver.HandleCInst passes all three fields through unchanged;
// mnemonic validity is the CodeGenerator's job, not the Resolver's.
type CInstruction struct {
	Comp string // computation mnemonic, always present
	Dest string // destination mnemonic, empty if the result isn't stored
	Jump string // jump mnemonic, empty if the instruction never jumps
}
