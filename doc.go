// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

// Package ebpf is the top-level handle for authoring, loading and operating
// Linux eBPF programs and maps with no precompiled native helper: it wraps
// the kernel's bpf() syscall multiplexer (internal/sys), exposes Program and
// Map as the loaded/created kernel objects, and re-exports the program,
// map, and attach type enums every other package in this module builds on.
//
// Instruction authoring lives in package asm; per-attach-type context
// layouts and prologues live in package progtype; BTF/CO-RE in package btf;
// netlink/perf attach in package link; ring buffer and perf array consumers
// in packages ringbuf and perf; the uniform blocking/timed-get/CAS
// abstraction over all of the above in package observe.
package ebpf
