// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package asm

// Opcode bit layout (spec.md §4.1): bits 0-2 select the instruction class;
// for the memory classes (LD/LDX/ST/STX) bits 3-4 select transfer size and
// bits 5-7 select addressing mode; for the ALU/JMP classes bit 3 selects the
// operand source (K=immediate, X=register) and bits 4-7 select the
// operation. Every constant below is already shifted into its final bit
// position so a full opcode is built by a plain OR, mirroring how the
// kernel's own uapi/linux/bpf.h defines these macros.

// Class occupies bits 0-2 of the opcode.
type Class uint8

const (
	LdClass    Class = 0x00
	LdXClass   Class = 0x01
	StClass    Class = 0x02
	StXClass   Class = 0x03
	ALUClass   Class = 0x04
	JmpClass   Class = 0x05
	Jmp32Class Class = 0x06
	ALU64Class Class = 0x07
)

// Size occupies bits 3-4 for the memory classes.
type Size uint8

const (
	SizeW  Size = 0x00 // word, 4 bytes
	SizeH  Size = 0x08 // half-word, 2 bytes
	SizeB  Size = 0x10 // byte
	SizeDW Size = 0x18 // double word, 8 bytes
)

// Mode occupies bits 5-7 for the memory classes.
type Mode uint8

const (
	ImmMode    Mode = 0x00
	AbsMode    Mode = 0x20
	IndMode    Mode = 0x40
	MemMode    Mode = 0x60
	AtomicMode Mode = 0xc0
)

// Source occupies bit 3 for the ALU/JMP classes: 0 selects an immediate
// (K) operand, 1 selects a register (X) operand.
type Source uint8

const (
	ImmSrc Source = 0x00
	RegSrc Source = 0x08
)

// AluOp occupies bits 4-7 for the ALU/ALU64 classes.
type AluOp uint8

const (
	AddOp  AluOp = 0x00
	SubOp  AluOp = 0x10
	MulOp  AluOp = 0x20
	DivOp  AluOp = 0x30
	OrOp   AluOp = 0x40
	AndOp  AluOp = 0x50
	LShOp  AluOp = 0x60
	RShOp  AluOp = 0x70
	NegOp  AluOp = 0x80
	ModOp  AluOp = 0x90
	XOrOp  AluOp = 0xa0
	MovOp  AluOp = 0xb0
	ArShOp AluOp = 0xc0
	EndOp  AluOp = 0xd0
)

// JmpOp occupies bits 4-7 for the JMP/JMP32 classes.
type JmpOp uint8

const (
	JaOp   JmpOp = 0x00
	JEqOp  JmpOp = 0x10
	JGTOp  JmpOp = 0x20
	JGEOp  JmpOp = 0x30
	JSETOp JmpOp = 0x40
	JNEOp  JmpOp = 0x50
	JSGTOp JmpOp = 0x60
	JSGEOp JmpOp = 0x70
	CallOp JmpOp = 0x80
	ExitOp JmpOp = 0x90
	JLTOp  JmpOp = 0xa0
	JLEOp  JmpOp = 0xb0
	JSLTOp JmpOp = 0xc0
	JSLEOp JmpOp = 0xd0
)

// AtomicOp is encoded in the immediate of an atomic instruction, not in the
// opcode byte; the opcode byte only says "this is an atomic op of this
// size" (StXClass|size|AtomicMode).
type AtomicOp uint32

const (
	AtomicAdd AtomicOp = 0x00
	AtomicOr  AtomicOp = 0x40
	AtomicAnd AtomicOp = 0x50
	AtomicXor AtomicOp = 0xa0
	// AtomicFetch, ORed into one of the ops above, requests the
	// fetch-and-modify variant (result written back to the source
	// register instead of discarded).
	AtomicFetch AtomicOp = 0x01
	AtomicXchg  AtomicOp = 0xe0
	AtomicCmpXchg AtomicOp = 0xf0
)

// memOpcode composes an opcode byte for the LD/LDX/ST/STX classes.
func memOpcode(c Class, m Mode, s Size) uint8 {
	return uint8(c) | uint8(m) | uint8(s)
}

// aluOpcode composes an opcode byte for the ALU/ALU64 classes.
func aluOpcode(c Class, op AluOp, src Source) uint8 {
	return uint8(c) | uint8(op) | uint8(src)
}

// jmpOpcode composes an opcode byte for the JMP/JMP32 classes.
func jmpOpcode(c Class, op JmpOp, src Source) uint8 {
	return uint8(c) | uint8(op) | uint8(src)
}

// pseudoMapFD is the LD_IMM64 src value that marks a wide load as a map-fd
// load (BPF_PSEUDO_MAP_FD in the kernel uapi), causing the verifier to
// replace the low 32 bits with the corresponding map pointer at load time.
const pseudoMapFD = 1
