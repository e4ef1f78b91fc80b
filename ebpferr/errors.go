// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

// Package ebpferr defines the error taxonomy shared across every goebpf
// package: a small set of Kind values, one Error type that wraps a cause and
// carries a Kind, and per-domain constructors used by the syscall, loader,
// attach, map, BTF and observation-handle layers.
package ebpferr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies which of the ten documented failure categories an Error
// belongs to. Kind is intentionally coarse: callers pattern-match on it
// instead of on error strings.
type Kind int

const (
	// KindEncoding covers bad registers/immediates/offsets caught at DSL
	// build time, before any syscall is made.
	KindEncoding Kind = iota
	// KindLabel covers unknown labels and branch-distance overflow during
	// assembly.
	KindLabel
	// KindSyscall covers any nonzero bpf()/perf_event_open()/ioctl() return
	// not otherwise classified below.
	KindSyscall
	// KindVerifier is a specialized KindSyscall for PROG_LOAD failures; see
	// VerifierKind for the finer classification.
	KindVerifier
	// KindAttach covers netlink/perf attach failures.
	KindAttach
	// KindMap covers map create/lookup/update/delete failures.
	KindMap
	// KindBTF covers BTF parsing and type/field resolution failures.
	KindBTF
	// KindRelocation covers a CO-RE relocation that could not be resolved.
	KindRelocation
	// KindClosed is returned by any operation on an already-closed
	// observation handle.
	KindClosed
	// KindTimeout is returned by a bounded-wait get that found nothing
	// before its deadline.
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindEncoding:
		return "encoding"
	case KindLabel:
		return "label"
	case KindSyscall:
		return "syscall"
	case KindVerifier:
		return "verifier"
	case KindAttach:
		return "attach"
	case KindMap:
		return "map"
	case KindBTF:
		return "btf"
	case KindRelocation:
		return "relocation"
	case KindClosed:
		return "closed"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by every goebpf package. It
// carries a Kind for pattern matching, a Detail sub-classification (e.g. the
// AttachDetail or MapDetail below) and wraps the underlying cause so
// errors.Unwrap/errors.Is/errors.As keep working against the original
// syscall error.
type Error struct {
	Kind    Kind
	Detail  string
	Op      string
	cause   error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		if e.cause != nil {
			return fmt.Sprintf("%s: %s (%s): %v", e.Op, e.Kind, e.Detail, e.cause)
		}
		return fmt.Sprintf("%s: %s (%s)", e.Op, e.Kind, e.Detail)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

// Unwrap lets errors.Is/errors.As see through to the wrapped cause.
func (e *Error) Unwrap() error { return e.cause }

// Is matches another *Error with the same Kind, so callers can write
// errors.Is(err, ebpferr.KindMap) style checks via KindError(kind).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	if other.cause == nil && other.Detail == "" {
		return e.Kind == other.Kind
	}
	return e.Kind == other.Kind && e.Detail == other.Detail
}

// New builds an *Error wrapping cause (which may be nil) with op/kind/detail.
func New(op string, kind Kind, detail string, cause error) *Error {
	return &Error{Op: op, Kind: kind, Detail: detail, cause: errors.WithStack(cause)}
}

// KindError returns a bare sentinel of the given kind, suitable for
// errors.Is(err, ebpferr.KindError(ebpferr.KindTimeout)).
func KindError(kind Kind) *Error { return &Error{Kind: kind} }

// Wrap attaches op to cause's message without changing its Kind, for
// re-raising an *Error one layer up the call stack.
func Wrap(op string, cause error) error {
	if cause == nil {
		return nil
	}
	var e *Error
	if errors.As(cause, &e) {
		return &Error{Op: op + ": " + e.Op, Kind: e.Kind, Detail: e.Detail, cause: e.cause}
	}
	return errors.Wrap(cause, op)
}
