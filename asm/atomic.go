// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package asm

// Atomic builds one BPF_STX|size|BPF_ATOMIC instruction: performs op on the
// value at [dst+off] using src, per spec.md §4.2. The legacy pre-5.12
// kernel only understood plain XADD (AtomicAdd with fetch=false); the
// richer FETCH/XCHG/CMPXCHG forms require a 5.12+ kernel. Nothing in this
// module probes which forms the running kernel accepts; on an older kernel a
// program using the richer forms is rejected when it is loaded.
func Atomic(dst Reg, off int16, src Reg, op AtomicOp, size Size) Instruction {
	return Instruction{
		OpCode: memOpcode(StXClass, AtomicMode, size),
		Dst:    dst,
		Src:    src,
		Off:    off,
		Imm:    int32(op),
	}
}

func AtomicAdd64(dst Reg, off int16, src Reg) Instruction {
	return Atomic(dst, off, src, AtomicAdd, SizeDW)
}

func AtomicAdd32(dst Reg, off int16, src Reg) Instruction {
	return Atomic(dst, off, src, AtomicAdd, SizeW)
}

func AtomicFetchAdd64(dst Reg, off int16, src Reg) Instruction {
	return Atomic(dst, off, src, AtomicAdd|AtomicFetch, SizeDW)
}

func AtomicAnd64(dst Reg, off int16, src Reg) Instruction {
	return Atomic(dst, off, src, AtomicAnd, SizeDW)
}

func AtomicOr64(dst Reg, off int16, src Reg) Instruction {
	return Atomic(dst, off, src, AtomicOr, SizeDW)
}

func AtomicXor64(dst Reg, off int16, src Reg) Instruction {
	return Atomic(dst, off, src, AtomicXor, SizeDW)
}

// AtomicXchg64 atomically swaps *[dst+off] and src, leaving the old value in
// src.
func AtomicXchg64(dst Reg, off int16, src Reg) Instruction {
	return Atomic(dst, off, src, AtomicXchg|AtomicFetch, SizeDW)
}

// AtomicCmpXchg64 atomically compares *[dst+off] against R0 and, if equal,
// stores src; the old value is always left in R0. This is the kernel's
// closest primitive to a true CAS — see observe.MapEntry.CompareAndSet for
// why userspace map entries still only get at-least retry-on-miss
// semantics built on top of this.
func AtomicCmpXchg64(dst Reg, off int16, src Reg) Instruction {
	return Atomic(dst, off, src, AtomicCmpXchg|AtomicFetch, SizeDW)
}
