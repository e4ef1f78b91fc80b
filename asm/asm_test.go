// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package asm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestOpcodeBytes checks the documented opcode byte for every builder named
// in spec.md §8's testable properties list.
func TestOpcodeBytes(t *testing.T) {
	cases := []struct {
		name string
		ins  Instruction
		want uint8
	}{
		{"mov64-imm", MovImm64(R0, 0), 0xB7},
		{"mov64-reg", MovReg64(R0, R1), 0xBF},
		{"add64-imm", AddImm64(R0, 1), 0x07},
		{"exit", Exit(), 0x95},
		{"call", Call(1), 0x85},
		{"ja", Ja(0), 0x05},
		{"jeq-imm", JEqImm(R0, 0, 0), 0x15},
		{"jeq-reg", JEqReg(R0, R1, 0), 0x1D},
		{"ldx-dw", LoadMemDW(R0, R1, 0), 0x79},
		{"stx-dw", StoreMemDW(R1, 0, R0), 0x7B},
		{"ld-map-fd", LoadMapFD(R1, 3), 0x18},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, c.ins.OpCode, "opcode for %s", c.name)
		})
	}
}

func TestEncodeLength(t *testing.T) {
	b, err := MovImm64(R0, 2).Encode()
	require.NoError(t, err)
	require.Len(t, b, 8)

	wide, err := LoadMapFD(R1, 7).Encode()
	require.NoError(t, err)
	require.Len(t, wide, 16)
}

// TestEncodeInvalidRegister covers the EncodingError path for an
// out-of-range register.
func TestEncodeInvalidRegister(t *testing.T) {
	ins := Instruction{OpCode: aluOpcode(ALU64Class, MovOp, ImmSrc), Dst: Reg(11)}
	_, err := ins.Encode()
	require.Error(t, err)
}

// TestAcceptAllXDP is spec.md §8 scenario 1.
func TestAcceptAllXDP(t *testing.T) {
	prog := NewProgram(MovImm64(R0, 2), Exit())
	out, err := prog.Assemble()
	require.NoError(t, err)
	require.Len(t, out, 16)
	want := []byte{0xB7, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x95, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	require.Equal(t, want, out)
}

// TestTCOK is spec.md §8 scenario 2.
func TestTCOK(t *testing.T) {
	prog := NewProgram(MovImm64(R0, 0), Exit())
	out, err := prog.Assemble()
	require.NoError(t, err)
	want := []byte{0xB7, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x95, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	require.Equal(t, want, out)
}

// TestXDPDevmapRedirect is spec.md §8 scenario 3: ld_map_fd + two movs + call + exit.
func TestXDPDevmapRedirect(t *testing.T) {
	prog := NewProgram(
		LoadMapFD(R1, 42),
		MovImm64(R2, 0),
		MovImm64(R3, 0),
		Call(51),
		Exit(),
	)
	out, err := prog.Assemble()
	require.NoError(t, err)
	require.Len(t, out, 40)
	require.Equal(t, uint8(0x18), out[0])
}

// TestConditionalJump is spec.md §8 scenario 4.
func TestConditionalJump(t *testing.T) {
	const target = Label("done")
	prog := NewProgram(
		MovImm64(R0, 10),
		JEqImmTo(R0, 10, target),
		MovImm64(R0, 0),
		Label(target),
		Exit(),
	)
	out, err := prog.Assemble()
	require.NoError(t, err)
	require.Len(t, out, 32)
	require.Equal(t, uint8(0x15), out[8])
	require.Equal(t, int16(1), int16(out[10])|int16(out[11])<<8)
}

func TestUnknownLabel(t *testing.T) {
	prog := NewProgram(JaTo("nowhere"), Exit())
	_, err := prog.Assemble()
	require.Error(t, err)
}

func TestLabelTooFar(t *testing.T) {
	nodes := []Node{JaTo("end")}
	for i := 0; i < 1<<16; i++ {
		nodes = append(nodes, MovImm64(R0, 0))
	}
	nodes = append(nodes, Label("end"), Exit())
	prog := NewProgram(nodes...)
	_, err := prog.Assemble()
	require.Error(t, err)
}

func TestAssembleIdempotent(t *testing.T) {
	prog := NewProgram(MovImm64(R0, 1), JEqImmTo(R0, 1, "l"), Label("l"), Exit())
	a, err := prog.Assemble()
	require.NoError(t, err)
	b, err := prog.Assemble()
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestBackwardJump(t *testing.T) {
	prog := NewProgram(
		Label("loop"),
		SubImm64(R1, 1),
		JNEImmTo(R1, 0, "loop"),
		Exit(),
	)
	out, err := prog.Assemble()
	require.NoError(t, err)
	require.Len(t, out, 24)
}

func TestAtomicOpcode(t *testing.T) {
	ins := AtomicAdd64(R1, 0, R2)
	require.Equal(t, uint8(0xdb), ins.OpCode)
	ins32 := AtomicAdd32(R1, 0, R2)
	require.Equal(t, uint8(0xc3), ins32.OpCode)
}

// TestJmp32Builders covers spec.md §4.2's "JMP32 and JMP64" requirement:
// every comparison must have a 32-bit counterpart that encodes the Jmp32Class
// bits instead of JmpClass, and is otherwise identical (same op/src bits,
// same Dst/Src/Imm/Off handling).
func TestJmp32Builders(t *testing.T) {
	require.Equal(t, uint8(JmpClass), JEqImm(R0, 0, 0).OpCode&0x07)
	require.Equal(t, uint8(Jmp32Class), JEqImm32(R0, 0, 0).OpCode&0x07)
	require.Equal(t, JEqImm(R0, 0, 0).OpCode&0xf8, JEqImm32(R0, 0, 0).OpCode&0xf8,
		"32-bit and 64-bit forms must agree on op/src bits, differing only in class")

	require.Equal(t, uint8(Jmp32Class), JNEReg32(R0, R1, 0).OpCode&0x07)
	require.Equal(t, uint8(Jmp32Class), JSGTImm32(R0, 1, 0).OpCode&0x07)
	require.Equal(t, uint8(Jmp32Class), JSetReg32(R0, R1, 0).OpCode&0x07)

	ins := JGEImm32(R2, 5, 3)
	require.Equal(t, R2, ins.Dst)
	require.Equal(t, int32(5), ins.Imm)
	require.Equal(t, int16(3), ins.Off)
}

// TestJmp32LabelVariantsResolve is spec.md §8's conditional-jump scenario
// (scenario 4) but run through the 32-bit label-taking constructors, which
// were previously unreachable from any exported builder.
func TestJmp32LabelVariantsResolve(t *testing.T) {
	const target = Label("done")
	prog := NewProgram(
		MovImm64(R0, 10),
		JEqImm32To(R0, 10, target),
		MovImm64(R0, 0),
		Label(target),
		Exit(),
	)
	out, err := prog.Assemble()
	require.NoError(t, err)
	require.Len(t, out, 32)
	require.Equal(t, uint8(Jmp32Class)|uint8(JEqOp)|uint8(ImmSrc), out[8])
	require.Equal(t, int16(1), int16(out[10])|int16(out[11])<<8)
}

func TestEveryInstructionMultipleOf8(t *testing.T) {
	prog := NewProgram(LoadMapFD(R1, 1), MovImm64(R0, 0), Exit())
	out, err := prog.Assemble()
	require.NoError(t, err)
	require.Equal(t, 0, len(out)%8)
}
