package asm

import (
	"fmt"

	"go.hmny.dev/n2t-core/pkg/errs"
	"go.hmny.dev/n2t-core/pkg/hack"
)

// ----------------------------------------------------------------------------
// Printer

// Prints a set of 'asm.Statement' back to their canonical Asm textual form.
//
// This isn't part of the main Assembler pipeline (Cleaner -> Resolver -> hack.CodeGenerator
// handles that end to end) but it's what lets the "Idempotence of cleanup" property (spec §8)
// be checked mechanically: Clean(Print(Parse(Clean(source)))) must equal Clean(source).
type Printer struct {
	program []Statement // The set of statements to print back to Asm text
}

// Initializes and returns to the caller a brand new 'Printer' struct.
// Requires that argument Program 'p' (what we want to print) is non-nil.
func NewPrinter(p []Statement) Printer {
	return Printer{program: p}
}

// Prints each statement in the 'program' field back to its canonical Asm textual form.
func (pr *Printer) Print() ([]string, error) {
	lines := make([]string, 0, len(pr.program))

	for _, statement := range pr.program {
		var generated string
		var err error

		switch tStatement := statement.(type) {
		case AInstruction:
			generated, err = pr.PrintAInst(tStatement)
		case CInstruction:
			generated, err = pr.PrintCInst(tStatement)
		case LabelDecl:
			generated, err = pr.PrintLabelDecl(tStatement)
		}

		if err != nil {
			return nil, err
		}
		lines = append(lines, generated)
	}

	return lines, nil
}

// Specialized function to print an A Instruction back to the Asm format.
func (Printer) PrintAInst(stmt AInstruction) (string, error) {
	if stmt.Location == "" {
		return "", fmt.Errorf("unable to print an A Instruction with an empty location: %w", errs.ErrUnknownMnemonic)
	}

	return fmt.Sprintf("@%s", stmt.Location), nil
}

// Specialized function to print a C Instruction back to the Asm format.
func (pr *Printer) PrintCInst(stmt CInstruction) (string, error) {
	if stmt.Comp == "" {
		return "", fmt.Errorf("expected 'comp' directive in C Instruction: %w", errs.ErrUnknownMnemonic)
	}

	switch {
	case stmt.Dest != "" && stmt.Jump != "":
		return fmt.Sprintf("%s=%s;%s", stmt.Dest, stmt.Comp, stmt.Jump), nil
	case stmt.Dest != "":
		return fmt.Sprintf("%s=%s", stmt.Dest, stmt.Comp), nil
	case stmt.Jump != "":
		return fmt.Sprintf("%s;%s", stmt.Comp, stmt.Jump), nil
	default:
		return "", fmt.Errorf("expected either 'dest' or 'jump' directive in C Instruction: %w", errs.ErrUnknownMnemonic)
	}
}

// Specialized function to print a Label Declaration back to the Asm format.
func (Printer) PrintLabelDecl(stmt LabelDecl) (string, error) {
	if stmt.Name == "" {
		return "", fmt.Errorf("unable to print a label declaration with an empty name: %w", errs.ErrInvalidIdentifier)
	}
	if _, found := hack.BuiltInTable[stmt.Name]; found {
		return "", fmt.Errorf("unable to override built-in label '%s': %w", stmt.Name, errs.ErrDuplicateLabel)
	}

	return fmt.Sprintf("(%s)", stmt.Name), nil
}
