package asm

import (
	"fmt"
	"strconv"

	"go.hmny.dev/n2t-core/pkg/errs"
	"go.hmny.dev/n2t-core/pkg/hack"
)

// ----------------------------------------------------------------------------
// Asm Resolver

// The Resolver takes an 'asm.Program' and produces its 'hack.Program' counterpart
// together with the fully populated 'hack.SymbolTable' the CodeGenerator needs to
// turn every Label/Raw/BuiltIn A Instruction into a concrete 15-bit address.
//
// Label declarations can be referenced before they're declared (a forward jump),
// so a single interleaved pass can't resolve them correctly: by the time it reaches
// the reference it doesn't yet know where the label will end up. We split symbol
// resolution into two explicit passes instead, mirroring the original assembler's
// 'get_labels' then 'get_variables' structure:
//
//  1. ResolvePass1Labels walks the program counting only real instructions (label
//     declarations don't emit a machine word) and binds every 'LabelDecl.Name' to
//     the address of the instruction immediately following it.
//  2. ResolvePass2Variables walks the program again and binds every A Instruction
//     symbol that's neither a built-in nor a number nor already a known label to
//     the next free RAM address, starting at 16, in the order each is first seen.
//
// Only after both passes have seeded the SymbolTable does Resolve lower the asm
// statements to their 'hack.Instruction' counterpart; by then every symbol the
// CodeGenerator needs to look up already has an address.
type Resolver struct {
	program Program
	table   hack.SymbolTable
}

// Initializes and returns to the caller a brand new 'Resolver' struct.
// Requires the argument Program to be not nil nor empty.
func NewResolver(p Program) Resolver {
	table := make(hack.SymbolTable, len(hack.BuiltInTable))
	for name, addr := range hack.BuiltInTable {
		table[name] = addr
	}

	return Resolver{program: p, table: table}
}

// WithPredefinedSymbols overrides/extends the built-in symbol table seeded by
// NewResolver, letting a '--config' override (pkg/config) rebind addresses such
// as 'SCREEN'/'KBD' without touching the platform defaults in pkg/hack.
func (r Resolver) WithPredefinedSymbols(overrides map[string]uint16) Resolver {
	for name, addr := range overrides {
		r.table[name] = addr
	}
	return r
}

// Runs both resolution passes and then lowers the program to its Hack counterpart.
func (r *Resolver) Resolve() (hack.Program, hack.SymbolTable, error) {
	if len(r.program) == 0 {
		return nil, nil, fmt.Errorf("the given 'program' is empty")
	}

	if err := r.ResolvePass1Labels(); err != nil {
		return nil, nil, err
	}
	if err := r.ResolvePass2Variables(); err != nil {
		return nil, nil, err
	}

	converted := make([]hack.Instruction, 0, len(r.program))
	for _, asmInst := range r.program {
		switch tAsmInst := asmInst.(type) {
		case AInstruction:
			hackInst, err := r.HandleAInst(tAsmInst)
			if hackInst == nil || err != nil {
				return nil, nil, err
			}
			converted = append(converted, hackInst)

		case CInstruction:
			hackInst, err := r.HandleCInst(tAsmInst)
			if hackInst == nil || err != nil {
				return nil, nil, err
			}
			converted = append(converted, hackInst)

		case LabelDecl: // Already accounted for in pass 1, no machine word to emit
			continue

		default:
			return nil, nil, fmt.Errorf("unrecognized instruction '%T'", asmInst)
		}
	}

	return converted, r.table, nil
}

// ResolvePass1Labels binds every 'LabelDecl' to the address of the instruction that
// follows it. The program counter only advances on A/C Instructions: a label
// declaration is a zero-width marker, not an instruction in its own right.
func (r *Resolver) ResolvePass1Labels() error {
	var pc uint16

	for _, asmInst := range r.program {
		switch tAsmInst := asmInst.(type) {
		case LabelDecl:
			label, err := r.HandleLabelDecl(tAsmInst)
			if err != nil {
				return err
			}
			if _, found := r.table[label]; found {
				return fmt.Errorf("label '%s' declared more than once: %w", label, errs.ErrDuplicateLabel)
			}
			r.table[label] = pc

		case AInstruction, CInstruction:
			pc++

		default:
			return fmt.Errorf("unrecognized instruction '%T'", asmInst)
		}
	}

	return nil
}

// ResolvePass2Variables binds every A Instruction symbol not already present in the
// table (neither a built-in nor a numeric literal nor a label bound in pass 1) to the
// next free RAM address. Addresses are handed out starting at 16, in the order each
// new symbol is first referenced, matching the platform's variable allocation rule.
func (r *Resolver) ResolvePass2Variables() error {
	next := uint16(16)

	for _, asmInst := range r.program {
		inst, ok := asmInst.(AInstruction)
		if !ok {
			continue
		}

		if _, found := r.table[inst.Location]; found {
			continue
		}
		if _, err := strconv.ParseInt(inst.Location, 10, 64); err == nil {
			continue // Numeric literal, handled directly by the CodeGenerator, no symbol needed
		}

		r.table[inst.Location] = next
		next++
	}

	return nil
}

// Specialized function to convert a 'asm.AInstruction' node to an 'hack.AInstruction'.
func (Resolver) HandleAInst(inst AInstruction) (hack.Instruction, error) {
	// Based on one of the following cases below (the type of the symbol) we do different things:
	// 1) If it's present in the BuiltInTable is we set the 'LocType'to 'BuiltIn' accordingly
	if _, found := hack.BuiltInTable[inst.Location]; found {
		return hack.AInstruction{LocType: hack.BuiltIn, LocName: inst.Location}, nil
	}
	// 2) If it can be parsed as an int we set the 'LocType' to 'Raw' accordingly
	if _, err := strconv.ParseInt(inst.Location, 10, 64); err == nil {
		return hack.AInstruction{LocType: hack.Raw, LocName: inst.Location}, nil
	}
	// 3) Else it's a label or a user defined variable, both resolved via the SymbolTable
	return hack.AInstruction{LocType: hack.Label, LocName: inst.Location}, nil
}

// Specialized function to convert a 'asm.CInstruction' node to an 'hack.CInstruction'.
func (Resolver) HandleCInst(inst CInstruction) (hack.Instruction, error) {
	if inst.Comp == "" { // Pre-check: CInstruction.Comp should always be provided
		return nil, fmt.Errorf("'Comp' sub-instruction should always be provided: %w", errs.ErrUnknownMnemonic)
	}

	return hack.CInstruction{Dest: inst.Dest, Comp: inst.Comp, Jump: inst.Jump}, nil
}

// Specialized function to extract from a 'asm.LabelDecl' node to the identifier of the label.
func (Resolver) HandleLabelDecl(inst LabelDecl) (string, error) {
	if inst.Name == "" {
		return "", fmt.Errorf("label declaration has an empty name: %w", errs.ErrInvalidIdentifier)
	}
	return inst.Name, nil
}
