package asm_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.hmny.dev/n2t-core/pkg/asm"
	"go.hmny.dev/n2t-core/pkg/errs"
)

func TestResolverForwardLabelReference(t *testing.T) {
	// '@LOOP' is referenced before '(LOOP)' is declared: only resolvable
	// because ResolvePass1Labels runs to completion before any A Instruction
	// is lowered (spec §4.2).
	program := asm.Program{
		asm.AInstruction{Location: "LOOP"},
		asm.CInstruction{Comp: "0", Jump: "JMP"},
		asm.LabelDecl{Name: "LOOP"},
		asm.CInstruction{Comp: "D", Dest: "M"},
	}

	hackProgram, table, err := asm.NewResolver(program).Resolve()
	require.NoError(t, err)
	assert.Len(t, hackProgram, 3) // the LabelDecl itself emits no instruction
	assert.Equal(t, uint16(2), table["LOOP"])
}

func TestResolverRejectsDuplicateLabel(t *testing.T) {
	program := asm.Program{
		asm.LabelDecl{Name: "LOOP"},
		asm.AInstruction{Location: "0"},
		asm.CInstruction{Comp: "0", Jump: "JMP"},
		asm.LabelDecl{Name: "LOOP"},
	}

	_, _, err := asm.NewResolver(program).Resolve()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrDuplicateLabel))
}

func TestResolverAllocatesVariablesInOrderOfFirstReference(t *testing.T) {
	program := asm.Program{
		asm.AInstruction{Location: "foo"},
		asm.CInstruction{Comp: "D", Dest: "M"},
		asm.AInstruction{Location: "bar"},
		asm.CInstruction{Comp: "D", Dest: "M"},
		asm.AInstruction{Location: "foo"}, // already seen, must not consume another slot
		asm.CInstruction{Comp: "D", Dest: "M"},
	}

	_, table, err := asm.NewResolver(program).Resolve()
	require.NoError(t, err)
	assert.Equal(t, uint16(16), table["foo"])
	assert.Equal(t, uint16(17), table["bar"])
}
