// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package arch

import "runtime"

// Detect maps Go's GOARCH to our Arch enum. It is resolved once by callers
// (program-type builders cache it) rather than hidden behind a package-level
// var, per the "do not hardcode x86_64" design note: every caller that needs
// an architecture must say so explicitly, even if that means passing
// arch.Detect() through.
func Detect() Arch {
	switch runtime.GOARCH {
	case "amd64":
		return X86_64
	case "arm64":
		return AArch64
	case "s390x":
		return S390X
	case "ppc64le":
		return PPC64LE
	case "riscv64":
		return RISCV64
	default:
		return Unknown
	}
}
