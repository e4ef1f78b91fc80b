// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

// Package helpers is the BPF helper-function ID registry (spec.md §4.3/§6,
// component C13): a numbered catalog of kernel helper functions callable
// from a BPF program via asm.Call(id), annotated with the kernel version
// that introduced each one so program-type builders can warn (not enforce —
// the verifier is the ground truth) when a helper predates the host's
// declared minimum kernel.
package helpers

// ID is a helper function's numeric identifier, passed directly to
// asm.Call.
type ID int32

// Helper IDs below are the kernel uapi's stable numbering (bpf_helper
// enum in include/uapi/linux/bpf.h); they never change once assigned.
const (
	MapLookupElem ID = 1 + iota
	MapUpdateElem
	MapDeleteElem
	ProbeRead
	KtimeGetNS
	TracePrintk
	GetPrandomU32
	GetSMPProcessorID
	SKBStoreBytes
	L3CSumReplace
	L4CSumReplace
	TailCall
	CloneRedirect
	GetCurrentPIDTGID
	GetCurrentUIDGID
	GetCurrentComm
	GetCgroupClassID
	SKBVlanPush
	SKBVlanPop
	SKBGetTunnelKey
	SKBSetTunnelKey
	PerfEventRead
	Redirect
	GetRouteRealm
	PerfEventOutput
	SKBLoadBytes
	GetStackID
	CSumDiff
	SKBGetTunnelOpt
	SKBSetTunnelOpt
	SKBChangeProto
	SKBChangeType
	SKBUnderCgroup
	GetHashRecalc
	GetCurrentTask
	ProbeWriteUser
	CurrentTaskUnderCgroup
	SKBChangeTail
	SKBPullData
	CSumUpdate
	SetHashInvalid
	GetNumaNodeID
	SKBChangeHead
	XDPAdjustHead
	ProbeReadStr
	GetSocketCookie
	GetSocketUID
	SetHash
	SetSockopt
	SKBAdjustRoom
	RedirectMap
	SKRedirectMap
	SockMapUpdate
	XDPAdjustMeta
	PerfEventReadValue
	PerfProgReadValue
	GetSockopt
	OverrideReturn
	SockOpsCbFlagsSet
	MsgRedirectMap
	MsgApplyBytes
	MsgCorkBytes
	MsgPullData
	Bind
	XDPAdjustTail
	SKBGetXfrmState
	GetStack
	SKBLoadBytesRelative
	FIBLookup
	SockHashUpdate
	MsgRedirectHash
	SKRedirectHash
	LWTPushEncap
	LWTSeg6StoreBytes
	LWTSeg6AdjustSRH
	LWTSeg6Action
	RCRepeat
	RCKeydown
	SKBCgroupID
	GetCurrentCgroupID
	GetLocalStorage
	SKSelectReuseport
	SKBAncestorCgroupID
	SKLookupTCP
	SKLookupUDP
	SKRelease
	MapPushElem
	MapPopElem
	MapPeekElem
	MsgPushData
	MsgPopData
	RCPointerRel
	SPinLock
	SKBCgroupClassID
	SKAncestorCgroupID
	SKCgroupID
	SKBEcnSetCE
	TCPCheckSyncookie
	SysctlGetName
	SysctlGetCurrentValue
	SysctlGetNewValue
	SysctlSetNewValue
	StrToL
	StrToU
	SKStorageGet
	SKStorageDelete
	SendSignal
	TCPGenSyncookie
	SKBOutput
	ProbeReadUser
	ProbeReadKernel
	ProbeReadUserStr
	ProbeReadKernelStr
	TCPSendAck
	SendSignalThread
	Jiffies64
	ReadBranchRecords
	GetNSCurrentPIDTGID
	XDPOutput
	GetNetnsCookie
	GetCurrentAncestorCgroupID
	SKAssign
	KtimeGetBootNS
	SeqPrintf
	SeqWrite
	SKCgroupID2
	RingBufOutput
	RingBufReserve
	RingBufSubmit
	RingBufDiscard
	RingBufQuery
	CSumLevel
	SKChangeTCPState
	SeqPrintfBTF
	SKBCgroupClassID2
	RedirectNeigh
	PerCPUPtr
	ThisCPUPtr
	RedirectPeer
	TaskStorageGet
	TaskStorageDelete
	GetCurrentTaskBTF
	BprmOptsSet
	KtimeGetCoarseNS
	InodeStorageGet
	InodeStorageDelete
	GetFuncIP
	GetFuncArgCnt
	GetFuncArg
	GetFuncRet
)

// Since gives the kernel minor version (major, minor) a helper was
// introduced in, for the subset the event-transport and CO-RE packages in
// this module actually call; helpers outside this map are simply not
// version-checked (the verifier still rejects an unavailable call, this
// table only powers an early, optional warning).
var since = map[ID][2]int{
	MapLookupElem:        {3, 18},
	MapUpdateElem:        {3, 19},
	MapDeleteElem:        {3, 19},
	PerfEventOutput:      {4, 3},
	GetCurrentPIDTGID:    {4, 1},
	GetCurrentComm:       {4, 1},
	ProbeReadStr:         {4, 11},
	XDPAdjustHead:        {4, 10},
	RedirectMap:          {4, 14},
	MapPushElem:          {4, 18},
	MapPopElem:           {4, 18},
	MapPeekElem:          {4, 18},
	SKLookupTCP:          {4, 20},
	SKLookupUDP:          {4, 20},
	SKRelease:            {4, 20},
	RingBufOutput:        {5, 8},
	RingBufReserve:       {5, 8},
	RingBufSubmit:        {5, 8},
	RingBufDiscard:       {5, 8},
	RingBufQuery:         {5, 8},
	SKAssign:             {5, 6},
	GetFuncIP:            {5, 17},
	GetFuncArgCnt:        {5, 17},
	GetFuncArg:           {5, 17},
	GetFuncRet:           {5, 17},
}

// names is the helper's conventional C name (bpf_<name>), useful for
// logging and for error messages quoting "helper N (bpf_xxx)". Kept for the
// subset of helpers this module's own packages call directly; unlisted IDs
// simply have no name, not an error.
var names = map[ID]string{
	MapLookupElem:     "bpf_map_lookup_elem",
	MapUpdateElem:     "bpf_map_update_elem",
	MapDeleteElem:     "bpf_map_delete_elem",
	GetCurrentPIDTGID: "bpf_get_current_pid_tgid",
	GetCurrentComm:    "bpf_get_current_comm",
	KtimeGetNS:        "bpf_ktime_get_ns",
	TailCall:          "bpf_tail_call",
	PerfEventOutput:   "bpf_perf_event_output",
	ProbeRead:         "bpf_probe_read",
	ProbeReadStr:      "bpf_probe_read_str",
	ProbeReadUser:     "bpf_probe_read_user",
	ProbeReadKernel:   "bpf_probe_read_kernel",
	XDPAdjustHead:     "bpf_xdp_adjust_head",
	RedirectMap:       "bpf_redirect_map",
	Redirect:          "bpf_redirect",
	MapPushElem:       "bpf_map_push_elem",
	MapPopElem:        "bpf_map_pop_elem",
	MapPeekElem:       "bpf_map_peek_elem",
	SKLookupTCP:       "bpf_sk_lookup_tcp",
	SKLookupUDP:       "bpf_sk_lookup_udp",
	SKRelease:         "bpf_sk_release",
	SKAssign:          "bpf_sk_assign",
	RingBufOutput:     "bpf_ringbuf_output",
	RingBufReserve:    "bpf_ringbuf_reserve",
	RingBufSubmit:     "bpf_ringbuf_submit",
	RingBufDiscard:    "bpf_ringbuf_discard",
	RingBufQuery:      "bpf_ringbuf_query",
	GetFuncIP:         "bpf_get_func_ip",
	GetFuncArgCnt:     "bpf_get_func_arg_cnt",
	GetFuncArg:        "bpf_get_func_arg",
	GetFuncRet:        "bpf_get_func_ret",
}

// MinVersion reports the (major, minor) kernel version that introduced id,
// and whether this registry has that information at all.
func MinVersion(id ID) (major, minor int, known bool) {
	v, ok := since[id]
	if !ok {
		return 0, 0, false
	}
	return v[0], v[1], true
}

// Name returns the conventional bpf_<name> for id, or "" if unknown.
func Name(id ID) string { return names[id] }
