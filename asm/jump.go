// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package asm

// jumpImm/jumpReg build a conditional branch with a fixed, already-known
// instruction-slot offset. The label-taking siblings below (e.g. JEqImmTo)
// are the ones most callers want; these exist for the rare case of a
// hand-computed backward branch or a test asserting an exact encoded byte.
func jumpImm(op JmpOp, jmp32 bool, dst Reg, imm int32, off int16) Instruction {
	class := JmpClass
	if jmp32 {
		class = Jmp32Class
	}
	return Instruction{OpCode: jmpOpcode(class, op, ImmSrc), Dst: dst, Imm: imm, Off: off}
}

func jumpReg(op JmpOp, jmp32 bool, dst, src Reg, off int16) Instruction {
	class := JmpClass
	if jmp32 {
		class = Jmp32Class
	}
	return Instruction{OpCode: jmpOpcode(class, op, RegSrc), Dst: dst, Src: src, Off: off}
}

// jumpImmTo/jumpRegTo build the same instruction but with an unresolved
// Label target instead of a literal Off; the assembler fills in Off during
// its second pass.
func jumpImmTo(op JmpOp, jmp32 bool, dst Reg, imm int32, label Label) Instruction {
	return jumpImm(op, jmp32, dst, imm, 0).WithTarget(label)
}

func jumpRegTo(op JmpOp, jmp32 bool, dst, src Reg, label Label) Instruction {
	return jumpReg(op, jmp32, dst, src, 0).WithTarget(label)
}

// Ja is an unconditional jump; dst/src/imm are unused (always zero) and off
// is the encoded signed branch distance.
func Ja(off int16) Instruction {
	return Instruction{OpCode: jmpOpcode(JmpClass, JaOp, ImmSrc), Off: off}
}

// JaTo is Ja with a label instead of a literal offset.
func JaTo(label Label) Instruction { return Ja(0).WithTarget(label) }

// One pair of constructors (Imm/Reg, Off-literal/To-label) per comparison,
// for both the 64-bit (JMP) and 32-bit (JMP32) variants.
func JEqImm(dst Reg, imm int32, off int16) Instruction  { return jumpImm(JEqOp, false, dst, imm, off) }
func JEqReg(dst, src Reg, off int16) Instruction          { return jumpReg(JEqOp, false, dst, src, off) }
func JEqImmTo(dst Reg, imm int32, l Label) Instruction   { return jumpImmTo(JEqOp, false, dst, imm, l) }
func JEqRegTo(dst, src Reg, l Label) Instruction          { return jumpRegTo(JEqOp, false, dst, src, l) }

func JNEImm(dst Reg, imm int32, off int16) Instruction { return jumpImm(JNEOp, false, dst, imm, off) }
func JNEReg(dst, src Reg, off int16) Instruction        { return jumpReg(JNEOp, false, dst, src, off) }
func JNEImmTo(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JNEOp, false, dst, imm, l) }
func JNERegTo(dst, src Reg, l Label) Instruction        { return jumpRegTo(JNEOp, false, dst, src, l) }

func JGTImm(dst Reg, imm int32, off int16) Instruction { return jumpImm(JGTOp, false, dst, imm, off) }
func JGTReg(dst, src Reg, off int16) Instruction        { return jumpReg(JGTOp, false, dst, src, off) }
func JGTImmTo(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JGTOp, false, dst, imm, l) }
func JGTRegTo(dst, src Reg, l Label) Instruction        { return jumpRegTo(JGTOp, false, dst, src, l) }

func JGEImm(dst Reg, imm int32, off int16) Instruction { return jumpImm(JGEOp, false, dst, imm, off) }
func JGEReg(dst, src Reg, off int16) Instruction        { return jumpReg(JGEOp, false, dst, src, off) }
func JGEImmTo(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JGEOp, false, dst, imm, l) }
func JGERegTo(dst, src Reg, l Label) Instruction        { return jumpRegTo(JGEOp, false, dst, src, l) }

func JLTImm(dst Reg, imm int32, off int16) Instruction { return jumpImm(JLTOp, false, dst, imm, off) }
func JLTReg(dst, src Reg, off int16) Instruction        { return jumpReg(JLTOp, false, dst, src, off) }
func JLTImmTo(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JLTOp, false, dst, imm, l) }
func JLTRegTo(dst, src Reg, l Label) Instruction        { return jumpRegTo(JLTOp, false, dst, src, l) }

func JLEImm(dst Reg, imm int32, off int16) Instruction { return jumpImm(JLEOp, false, dst, imm, off) }
func JLEReg(dst, src Reg, off int16) Instruction        { return jumpReg(JLEOp, false, dst, src, off) }
func JLEImmTo(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JLEOp, false, dst, imm, l) }
func JLERegTo(dst, src Reg, l Label) Instruction        { return jumpRegTo(JLEOp, false, dst, src, l) }

func JSGTImm(dst Reg, imm int32, off int16) Instruction { return jumpImm(JSGTOp, false, dst, imm, off) }
func JSGTReg(dst, src Reg, off int16) Instruction        { return jumpReg(JSGTOp, false, dst, src, off) }
func JSGTImmTo(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JSGTOp, false, dst, imm, l) }
func JSGTRegTo(dst, src Reg, l Label) Instruction        { return jumpRegTo(JSGTOp, false, dst, src, l) }

func JSGEImm(dst Reg, imm int32, off int16) Instruction { return jumpImm(JSGEOp, false, dst, imm, off) }
func JSGEReg(dst, src Reg, off int16) Instruction        { return jumpReg(JSGEOp, false, dst, src, off) }
func JSGEImmTo(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JSGEOp, false, dst, imm, l) }
func JSGERegTo(dst, src Reg, l Label) Instruction        { return jumpRegTo(JSGEOp, false, dst, src, l) }

func JSLTImm(dst Reg, imm int32, off int16) Instruction { return jumpImm(JSLTOp, false, dst, imm, off) }
func JSLTReg(dst, src Reg, off int16) Instruction        { return jumpReg(JSLTOp, false, dst, src, off) }
func JSLTImmTo(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JSLTOp, false, dst, imm, l) }
func JSLTRegTo(dst, src Reg, l Label) Instruction        { return jumpRegTo(JSLTOp, false, dst, src, l) }

func JSLEImm(dst Reg, imm int32, off int16) Instruction { return jumpImm(JSLEOp, false, dst, imm, off) }
func JSLEReg(dst, src Reg, off int16) Instruction        { return jumpReg(JSLEOp, false, dst, src, off) }
func JSLEImmTo(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JSLEOp, false, dst, imm, l) }
func JSLERegTo(dst, src Reg, l Label) Instruction        { return jumpRegTo(JSLEOp, false, dst, src, l) }

func JSetImm(dst Reg, imm int32, off int16) Instruction { return jumpImm(JSETOp, false, dst, imm, off) }
func JSetReg(dst, src Reg, off int16) Instruction        { return jumpReg(JSETOp, false, dst, src, off) }
func JSetImmTo(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JSETOp, false, dst, imm, l) }
func JSetRegTo(dst, src Reg, l Label) Instruction        { return jumpRegTo(JSETOp, false, dst, src, l) }

// 32-bit (JMP32) counterparts of every comparison above, named Op+Imm/Reg+32
// following the Mov*32/Add*32/... convention in alu.go. The kernel compares
// only the low 32 bits of dst (and src, for the Reg forms) and does not
// touch the upper 32 bits, unlike the 64-bit JMP class above.
func JEqImm32(dst Reg, imm int32, off int16) Instruction  { return jumpImm(JEqOp, true, dst, imm, off) }
func JEqReg32(dst, src Reg, off int16) Instruction          { return jumpReg(JEqOp, true, dst, src, off) }
func JEqImm32To(dst Reg, imm int32, l Label) Instruction   { return jumpImmTo(JEqOp, true, dst, imm, l) }
func JEqReg32To(dst, src Reg, l Label) Instruction          { return jumpRegTo(JEqOp, true, dst, src, l) }

func JNEImm32(dst Reg, imm int32, off int16) Instruction { return jumpImm(JNEOp, true, dst, imm, off) }
func JNEReg32(dst, src Reg, off int16) Instruction        { return jumpReg(JNEOp, true, dst, src, off) }
func JNEImm32To(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JNEOp, true, dst, imm, l) }
func JNEReg32To(dst, src Reg, l Label) Instruction        { return jumpRegTo(JNEOp, true, dst, src, l) }

func JGTImm32(dst Reg, imm int32, off int16) Instruction { return jumpImm(JGTOp, true, dst, imm, off) }
func JGTReg32(dst, src Reg, off int16) Instruction        { return jumpReg(JGTOp, true, dst, src, off) }
func JGTImm32To(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JGTOp, true, dst, imm, l) }
func JGTReg32To(dst, src Reg, l Label) Instruction        { return jumpRegTo(JGTOp, true, dst, src, l) }

func JGEImm32(dst Reg, imm int32, off int16) Instruction { return jumpImm(JGEOp, true, dst, imm, off) }
func JGEReg32(dst, src Reg, off int16) Instruction        { return jumpReg(JGEOp, true, dst, src, off) }
func JGEImm32To(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JGEOp, true, dst, imm, l) }
func JGEReg32To(dst, src Reg, l Label) Instruction        { return jumpRegTo(JGEOp, true, dst, src, l) }

func JLTImm32(dst Reg, imm int32, off int16) Instruction { return jumpImm(JLTOp, true, dst, imm, off) }
func JLTReg32(dst, src Reg, off int16) Instruction        { return jumpReg(JLTOp, true, dst, src, off) }
func JLTImm32To(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JLTOp, true, dst, imm, l) }
func JLTReg32To(dst, src Reg, l Label) Instruction        { return jumpRegTo(JLTOp, true, dst, src, l) }

func JLEImm32(dst Reg, imm int32, off int16) Instruction { return jumpImm(JLEOp, true, dst, imm, off) }
func JLEReg32(dst, src Reg, off int16) Instruction        { return jumpReg(JLEOp, true, dst, src, off) }
func JLEImm32To(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JLEOp, true, dst, imm, l) }
func JLEReg32To(dst, src Reg, l Label) Instruction        { return jumpRegTo(JLEOp, true, dst, src, l) }

func JSGTImm32(dst Reg, imm int32, off int16) Instruction { return jumpImm(JSGTOp, true, dst, imm, off) }
func JSGTReg32(dst, src Reg, off int16) Instruction        { return jumpReg(JSGTOp, true, dst, src, off) }
func JSGTImm32To(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JSGTOp, true, dst, imm, l) }
func JSGTReg32To(dst, src Reg, l Label) Instruction        { return jumpRegTo(JSGTOp, true, dst, src, l) }

func JSGEImm32(dst Reg, imm int32, off int16) Instruction { return jumpImm(JSGEOp, true, dst, imm, off) }
func JSGEReg32(dst, src Reg, off int16) Instruction        { return jumpReg(JSGEOp, true, dst, src, off) }
func JSGEImm32To(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JSGEOp, true, dst, imm, l) }
func JSGEReg32To(dst, src Reg, l Label) Instruction        { return jumpRegTo(JSGEOp, true, dst, src, l) }

func JSLTImm32(dst Reg, imm int32, off int16) Instruction { return jumpImm(JSLTOp, true, dst, imm, off) }
func JSLTReg32(dst, src Reg, off int16) Instruction        { return jumpReg(JSLTOp, true, dst, src, off) }
func JSLTImm32To(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JSLTOp, true, dst, imm, l) }
func JSLTReg32To(dst, src Reg, l Label) Instruction        { return jumpRegTo(JSLTOp, true, dst, src, l) }

func JSLEImm32(dst Reg, imm int32, off int16) Instruction { return jumpImm(JSLEOp, true, dst, imm, off) }
func JSLEReg32(dst, src Reg, off int16) Instruction        { return jumpReg(JSLEOp, true, dst, src, off) }
func JSLEImm32To(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JSLEOp, true, dst, imm, l) }
func JSLEReg32To(dst, src Reg, l Label) Instruction        { return jumpRegTo(JSLEOp, true, dst, src, l) }

func JSetImm32(dst Reg, imm int32, off int16) Instruction { return jumpImm(JSETOp, true, dst, imm, off) }
func JSetReg32(dst, src Reg, off int16) Instruction        { return jumpReg(JSETOp, true, dst, src, off) }
func JSetImm32To(dst Reg, imm int32, l Label) Instruction { return jumpImmTo(JSETOp, true, dst, imm, l) }
func JSetReg32To(dst, src Reg, l Label) Instruction        { return jumpRegTo(JSETOp, true, dst, src, l) }

// Call emits a helper call by numeric ID (spec.md §4.2); see package
// helpers for the registry of known IDs.
func Call(helperID int32) Instruction {
	return Instruction{OpCode: jmpOpcode(JmpClass, CallOp, ImmSrc), Imm: helperID}
}

// Exit emits the program terminator; every well-formed program must reach
// one on every path, with the return value already in R0.
func Exit() Instruction {
	return Instruction{OpCode: jmpOpcode(JmpClass, ExitOp, ImmSrc)}
}
