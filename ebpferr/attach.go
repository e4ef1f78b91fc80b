// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package ebpferr

// AttachDetail distinguishes why an XDP/TC/perf attach failed.
type AttachDetail string

const (
	InterfaceNotFound AttachDetail = "interface_not_found"
	QdiscExists       AttachDetail = "qdisc_exists"
	PermissionDenied  AttachDetail = "permission_denied"
	Unsupported       AttachDetail = "unsupported"
)

// NewAttachError builds a KindAttach *Error with the given detail.
func NewAttachError(op string, detail AttachDetail, cause error) *Error {
	return New(op, KindAttach, string(detail), cause)
}

// MapDetail distinguishes the reason a map operation failed.
type MapDetail string

const (
	KeyNotFound MapDetail = "key_not_found"
	KeyExists   MapDetail = "key_exists"
	TableFull   MapDetail = "table_full"
	InvalidFd   MapDetail = "invalid_fd"
	MapGeneric  MapDetail = "generic"
)

// NewMapError builds a KindMap *Error with the given detail.
func NewMapError(op string, detail MapDetail, cause error) *Error {
	return New(op, KindMap, string(detail), cause)
}

// BTFDetail distinguishes the reason a BTF operation failed.
type BTFDetail string

const (
	BTFNotAvailable BTFDetail = "not_available"
	BTFMalformed    BTFDetail = "malformed"
	BTFTypeNotFound BTFDetail = "type_not_found"
	BTFFieldNotFound BTFDetail = "field_not_found"
)

// NewBTFError builds a KindBTF *Error with the given detail.
func NewBTFError(op string, detail BTFDetail, cause error) *Error {
	return New(op, KindBTF, string(detail), cause)
}
