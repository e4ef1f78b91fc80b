// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

// Package arch holds the per-CPU-architecture tables the kprobe/uprobe
// program-type builders need: pt_regs field offsets for reading syscall/
// function arguments and return values off a probe's context. Kept out of
// package progtype so the table can be unit tested (and overridden for
// cross-arch test runs) independent of instruction emission.
package arch

// Arch identifies a target CPU architecture. Detect() reports the host's;
// builders may also be given an explicit Arch to cross-build for a
// different target.
type Arch int

const (
	Unknown Arch = iota
	X86_64
	AArch64
	S390X
	PPC64LE
	RISCV64
)

func (a Arch) String() string {
	switch a {
	case X86_64:
		return "x86_64"
	case AArch64:
		return "aarch64"
	case S390X:
		return "s390x"
	case PPC64LE:
		return "ppc64le"
	case RISCV64:
		return "riscv64"
	default:
		return "unknown"
	}
}

// PtRegsOffsets gives the byte offset, within a struct pt_regs as delivered
// to a kprobe/uprobe BPF program's ctx pointer, of each argument register and
// of the return value register. Index 0..5 are arg0..arg5; Ret is the return
// value register (valid only in a kretprobe/uretprobe context); SP and IP
// are the stack pointer and instruction pointer, used by stack-walking
// helpers.
type PtRegsOffsets struct {
	Arg    [6]int64
	Ret    int64
	SP     int64
	IP     int64
}

// offsets is keyed by Arch and holds the spec's documented table. Values are
// byte offsets into the pt_regs struct as the kernel lays it out for that
// architecture; these are part of the stable in-kernel ABI and do not vary
// across kernel versions for a fixed architecture.
var offsets = map[Arch]PtRegsOffsets{
	X86_64: {
		// struct pt_regs (arch/x86/include/asm/ptrace.h), calling convention
		// order rdi,rsi,rdx,rcx,r8,r9.
		Arg: [6]int64{112, 104, 96, 88, 80, 72},
		Ret: 80, // rax
		SP:  152,
		IP:  128,
	},
	AArch64: {
		// struct user_pt_regs: regs[0..30] at offset 0, 8 bytes each.
		Arg: [6]int64{0, 8, 16, 24, 32, 40},
		Ret: 0, // x0
		SP:  248,
		IP:  256,
	},
	S390X: {
		// struct pt_regs: gprs[] array, args start at gprs[2].
		Arg: [6]int64{2 * 8, 3 * 8, 4 * 8, 5 * 8, 6 * 8, 7 * 8},
		Ret: 2 * 8,
		SP:  15 * 8,
		IP:  -1, // psw.addr, not a flat gprs offset; callers needing IP use a dedicated accessor
	},
	PPC64LE: {
		// struct pt_regs: gpr[3..8] are args 0..5, gpr[3] doubles as return.
		Arg: [6]int64{3 * 8, 4 * 8, 5 * 8, 6 * 8, 7 * 8, 8 * 8},
		Ret: 3 * 8,
		SP:  1 * 8,
		IP:  0,
	},
	RISCV64: {
		// struct user_regs_struct: a0..a5 following pc/ra/sp.
		Arg: [6]int64{80, 88, 96, 104, 112, 120},
		Ret: 80, // a0
		SP:  16,
		IP:  0,
	},
}

// Table returns the pt_regs offsets for a, or the zero value plus false if a
// is not one of the recognized architectures.
func Table(a Arch) (PtRegsOffsets, bool) {
	t, ok := offsets[a]
	return t, ok
}
