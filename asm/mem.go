// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package asm

// LoadMem loads size bytes from [src+off] into dst (BPF_LDX | size | MEM).
func LoadMem(dst, src Reg, off int16, size Size) Instruction {
	return Instruction{OpCode: memOpcode(LdXClass, MemMode, size), Dst: dst, Src: src, Off: off}
}

func LoadMemB(dst, src Reg, off int16) Instruction  { return LoadMem(dst, src, off, SizeB) }
func LoadMemH(dst, src Reg, off int16) Instruction  { return LoadMem(dst, src, off, SizeH) }
func LoadMemW(dst, src Reg, off int16) Instruction  { return LoadMem(dst, src, off, SizeW) }
func LoadMemDW(dst, src Reg, off int16) Instruction { return LoadMem(dst, src, off, SizeDW) }

// StoreMem stores src into [dst+off] (BPF_STX | size | MEM).
func StoreMem(dst Reg, off int16, src Reg, size Size) Instruction {
	return Instruction{OpCode: memOpcode(StXClass, MemMode, size), Dst: dst, Src: src, Off: off}
}

func StoreMemB(dst Reg, off int16, src Reg) Instruction  { return StoreMem(dst, off, src, SizeB) }
func StoreMemH(dst Reg, off int16, src Reg) Instruction  { return StoreMem(dst, off, src, SizeH) }
func StoreMemW(dst Reg, off int16, src Reg) Instruction  { return StoreMem(dst, off, src, SizeW) }
func StoreMemDW(dst Reg, off int16, src Reg) Instruction { return StoreMem(dst, off, src, SizeDW) }

// StoreImm stores an immediate into [dst+off] (BPF_ST | size | MEM).
func StoreImm(dst Reg, off int16, imm int32, size Size) Instruction {
	return Instruction{OpCode: memOpcode(StClass, MemMode, size), Dst: dst, Off: off, Imm: imm}
}

func StoreImmB(dst Reg, off int16, imm int32) Instruction  { return StoreImm(dst, off, imm, SizeB) }
func StoreImmH(dst Reg, off int16, imm int32) Instruction  { return StoreImm(dst, off, imm, SizeH) }
func StoreImmW(dst Reg, off int16, imm int32) Instruction  { return StoreImm(dst, off, imm, SizeW) }
func StoreImmDW(dst Reg, off int16, imm int32) Instruction { return StoreImm(dst, off, imm, SizeDW) }

// LoadImm64 loads an arbitrary 64-bit constant into dst using the wide
// LDDW form (spec.md §3, §4.2): two 8-byte cells, the second of which
// carries the high 32 bits and is otherwise all-zero.
func LoadImm64(dst Reg, imm uint64) Instruction {
	low := int32(uint32(imm))
	v := imm
	return Instruction{
		OpCode: memOpcode(LdClass, ImmMode, SizeDW),
		Dst:    dst,
		Imm:    low,
		wide:   &v,
	}
}

// LoadMapFD loads a map file descriptor as a wide immediate with the
// BPF_PSEUDO_MAP_FD source marker (spec.md §4.2 "LD_MAP_FD"), so the
// verifier substitutes the kernel map pointer for the low 32 bits at load
// time.
func LoadMapFD(dst Reg, fd int32) Instruction {
	v := uint64(uint32(fd))
	return Instruction{
		OpCode: memOpcode(LdClass, ImmMode, SizeDW),
		Dst:    dst,
		Src:    Reg(pseudoMapFD),
		Imm:    fd,
		wide:   &v,
	}
}
