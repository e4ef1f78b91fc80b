// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package arch

import "testing"

func TestTableX86_64(t *testing.T) {
	tbl, ok := Table(X86_64)
	if !ok {
		t.Fatal("expected x86_64 table to be present")
	}
	want := [6]int64{112, 104, 96, 88, 80, 72}
	if tbl.Arg != want {
		t.Fatalf("arg offsets = %v, want %v", tbl.Arg, want)
	}
	if tbl.Ret != 80 {
		t.Fatalf("ret offset = %d, want 80", tbl.Ret)
	}
}

func TestTableAArch64(t *testing.T) {
	tbl, ok := Table(AArch64)
	if !ok {
		t.Fatal("expected aarch64 table to be present")
	}
	for i, want := range [6]int64{0, 8, 16, 24, 32, 40} {
		if tbl.Arg[i] != want {
			t.Fatalf("arg[%d] = %d, want %d", i, tbl.Arg[i], want)
		}
	}
}

func TestTableUnknown(t *testing.T) {
	if _, ok := Table(Unknown); ok {
		t.Fatal("expected Unknown to have no table")
	}
}

func TestStringer(t *testing.T) {
	cases := map[Arch]string{
		X86_64:  "x86_64",
		AArch64: "aarch64",
		S390X:   "s390x",
		PPC64LE: "ppc64le",
		RISCV64: "riscv64",
		Unknown: "unknown",
	}
	for a, want := range cases {
		if got := a.String(); got != want {
			t.Errorf("Arch(%d).String() = %q, want %q", a, got, want)
		}
	}
}
