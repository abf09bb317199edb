package ppc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAsyncAssembleStreamsWords(t *testing.T) {
	ch := AsyncAssemble("addi r3, r0, 1\naddi r4, r0, 2\n", nil, 0x1000)

	var lines []AssembledLine
	for line := range ch {
		lines = append(lines, line)
	}
	require.Len(t, lines, 2)
	require.NoError(t, lines[0].Err)
	require.Equal(t, uint32(3), GetReg1(lines[0].Word))
	require.Equal(t, uint32(4), GetReg1(lines[1].Word))
}

func TestAsyncAssembleSurfacesError(t *testing.T) {
	ch := AsyncAssemble("notamnemonic r1, r2, r3\n", nil, 0)
	var lines []AssembledLine
	for line := range ch {
		lines = append(lines, line)
	}
	require.Len(t, lines, 1)
	require.Error(t, lines[0].Err)
}

func TestAsyncDisassembleStreamsLines(t *testing.T) {
	result, err := Assemble("addi r3, r0, 1\nadd r5, r3, r4\n", nil, 0x2000)
	require.NoError(t, err)

	ch := AsyncDisassemble(result.Code, 0x2000)
	var lines []DisassembledLine
	for line := range ch {
		lines = append(lines, line)
	}
	require.Len(t, lines, 2)
	require.Equal(t, uint32(0x2000), lines[0].Address)
	require.Equal(t, uint32(0x2004), lines[1].Address)
	require.Contains(t, lines[0].Text, "li", "addi with rA=r0 is rendered as li")
	require.Contains(t, lines[1].Text, "add")
}
