// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package ebpf

// Cmd identifies one of the bpf() syscall's sub-commands (spec.md §4.4).
// Values match the kernel uapi's enum bpf_cmd.
type Cmd int32

const (
	CmdMapCreate Cmd = iota
	CmdMapLookupElem
	CmdMapUpdateElem
	CmdMapDeleteElem
	CmdMapGetNextKey
	CmdProgLoad
	CmdObjPin
	CmdObjGet
	CmdProgAttach
	CmdProgDetach
	CmdProgTestRun
	CmdProgGetNextID
	CmdMapGetNextID
	CmdProgGetFDByID
	CmdMapGetFDByID
	CmdObjGetInfoByFD
	CmdProgQuery
	CmdRawTracepointOpen
	CmdBTFLoad
	CmdBTFGetFDByID
	CmdTaskFDQuery
	CmdMapLookupAndDeleteElem
	CmdMapFreeze
	CmdBTFGetNextID
	CmdMapLookupBatch
	CmdMapLookupAndDeleteBatch
	CmdMapUpdateBatch
	CmdMapDeleteBatch
	CmdLinkCreate
	CmdLinkUpdate
	CmdLinkGetFDByID
	CmdLinkGetNextID
	CmdEnableStats
	CmdIterCreate
	CmdLinkDetach
	CmdProgBindMap
)

// MapType selects the kernel map implementation (spec.md §3 "Map").
type MapType uint32

const (
	MapTypeUnspec MapType = iota
	MapTypeHash
	MapTypeArray
	MapTypeProgArray
	MapTypePerfEventArray
	MapTypePerCPUHash
	MapTypePerCPUArray
	MapTypeStackTrace
	MapTypeCgroupArray
	MapTypeLRUHash
	MapTypeLRUPerCPUHash
	MapTypeLPMTrie
	MapTypeArrayOfMaps
	MapTypeHashOfMaps
	MapTypeDevMap
	MapTypeSockMap
	MapTypeCPUMap
	MapTypeXSKMap
	MapTypeSockHash
	MapTypeCgroupStorage
	MapTypeReusePortSockArray
	MapTypePerCPUCgroupStorage
	MapTypeQueue
	MapTypeStack
	MapTypeSKStorage
	MapTypeDevMapHash
	MapTypeStructOps
	MapTypeRingBuf
	MapTypeInodeStorage
	MapTypeTaskStorage
)

func (t MapType) String() string {
	switch t {
	case MapTypeHash:
		return "Hash"
	case MapTypeArray:
		return "Array"
	case MapTypeProgArray:
		return "ProgArray"
	case MapTypePerfEventArray:
		return "PerfEventArray"
	case MapTypePerCPUHash:
		return "PerCPUHash"
	case MapTypePerCPUArray:
		return "PerCPUArray"
	case MapTypeStackTrace:
		return "StackTrace"
	case MapTypeCgroupArray:
		return "CgroupArray"
	case MapTypeLRUHash:
		return "LRUHash"
	case MapTypeLRUPerCPUHash:
		return "LRUPerCPUHash"
	case MapTypeLPMTrie:
		return "LPMTrie"
	case MapTypeArrayOfMaps:
		return "ArrayOfMaps"
	case MapTypeHashOfMaps:
		return "HashOfMaps"
	case MapTypeQueue:
		return "Queue"
	case MapTypeStack:
		return "Stack"
	case MapTypeRingBuf:
		return "RingBuf"
	case MapTypeStructOps:
		return "StructOps"
	default:
		return "Unknown"
	}
}

// IsPerCPU reports whether t stores one value slot per CPU.
func (t MapType) IsPerCPU() bool {
	switch t {
	case MapTypePerCPUHash, MapTypePerCPUArray, MapTypeLRUPerCPUHash, MapTypePerCPUCgroupStorage:
		return true
	default:
		return false
	}
}

// ProgType selects the program's attach category and therefore its context
// layout, helper set and return-value contract (spec.md §3 "Program").
type ProgType uint32

const (
	ProgTypeUnspec ProgType = iota
	ProgTypeSocketFilter
	ProgTypeKprobe
	ProgTypeSchedCls
	ProgTypeSchedAct
	ProgTypeTracepoint
	ProgTypeXDP
	ProgTypePerfEvent
	ProgTypeCgroupSkb
	ProgTypeCgroupSock
	ProgTypeLWTIn
	ProgTypeLWTOut
	ProgTypeLWTXmit
	ProgTypeSockOps
	ProgTypeSKSKB
	ProgTypeCgroupDevice
	ProgTypeSKMSG
	ProgTypeRawTracepoint
	ProgTypeCgroupSockAddr
	ProgTypeLWTSeg6Local
	ProgTypeLircMode2
	ProgTypeSKReuseport
	ProgTypeFlowDissector
	ProgTypeCgroupSysctl
	ProgTypeRawTracepointWritable
	ProgTypeCgroupSockopt
	ProgTypeTracing
	ProgTypeStructOps
	ProgTypeExt
	ProgTypeLSM
	ProgTypeSKLookup
	ProgTypeSyscall
)

func (t ProgType) String() string {
	switch t {
	case ProgTypeSocketFilter:
		return "SocketFilter"
	case ProgTypeKprobe:
		return "Kprobe"
	case ProgTypeSchedCls:
		return "SchedCls"
	case ProgTypeSchedAct:
		return "SchedAct"
	case ProgTypeTracepoint:
		return "Tracepoint"
	case ProgTypeXDP:
		return "XDP"
	case ProgTypePerfEvent:
		return "PerfEvent"
	case ProgTypeRawTracepoint:
		return "RawTracepoint"
	case ProgTypeFlowDissector:
		return "FlowDissector"
	case ProgTypeTracing:
		return "Tracing"
	case ProgTypeStructOps:
		return "StructOps"
	case ProgTypeSKLookup:
		return "SKLookup"
	case ProgTypeSKSKB:
		return "SKSKB"
	case ProgTypeSKMSG:
		return "SKMSG"
	default:
		return "Unknown"
	}
}

// AttachType further qualifies certain ProgTypes (fentry/fexit/fmod_ret all
// share ProgTypeTracing, for example, and are distinguished only by
// AttachType; spec.md §3 "Program" lifecycle and §1 list of attach types).
type AttachType uint32

const (
	AttachNone AttachType = iota
	AttachCgroupInetIngress
	AttachCgroupInetEgress
	AttachCgroupInetSockCreate
	AttachCgroupSockOps
	AttachSKSKBStreamParser
	AttachSKSKBStreamVerdict
	AttachCgroupDevice
	AttachSKMSGVerdict
	AttachCgroupInet4Bind
	AttachCgroupInet6Bind
	AttachCgroupInet4Connect
	AttachCgroupInet6Connect
	AttachCgroupInet4PostBind
	AttachCgroupInet6PostBind
	AttachCgroupUDP4Sendmsg
	AttachCgroupUDP6Sendmsg
	AttachLircMode2
	AttachFlowDissector
	AttachTraceFEntry
	AttachTraceFExit
	AttachModifyReturn
	AttachLSMMac
	AttachTraceIter
	AttachCgroupInet4GetPeername
	AttachCgroupInet6GetPeername
	AttachCgroupInet4GetSockname
	AttachCgroupInet6GetSockname
	AttachXDPDevMap
	AttachCgroupInetSockRelease
	AttachXDPCPUMap
	AttachSKLookup
	AttachXDP
	AttachSKSKBVerdict
	AttachSKReuseportSelect
	AttachSKReuseportSelectOrMigrate
	AttachPerfEvent
	AttachTraceKprobeMulti
	AttachStructOps
)

// MapUpdateFlag selects BPF_MAP_UPDATE_ELEM's insert/replace semantics
// (spec.md §3 Map invariants: "non-LRU hash maps above capacity inserts with
// NOEXIST semantics fail").
type MapUpdateFlag uint64

const (
	UpdateAny MapUpdateFlag = iota
	UpdateNoExist
	UpdateExist
)

// XDP return codes (spec.md §4.3).
const (
	XDPAborted  int32 = 0
	XDPDrop     int32 = 1
	XDPPass     int32 = 2
	XDPTx       int32 = 3
	XDPRedirect int32 = 4
)

// TC classifier return codes (spec.md §4.3).
const (
	TCActUnspec     int32 = -1
	TCActOK         int32 = 0
	TCActReclassify int32 = 1
	TCActShot       int32 = 2
	TCActPipe       int32 = 3
	TCActRedirect   int32 = 7
)

// Socket-program return codes and iterator/flow-dissector return codes
// (spec.md §4.3).
const (
	SKDrop int32 = 0
	SKPass int32 = 1

	FlowDissectorOK   int32 = 0
	FlowDissectorDrop int32 = -1

	IterContinue int32 = 0
	IterStop     int32 = 1

	SocketFilterReject int32 = 0
)

// XDP attach modes, used by the IFLA_XDP_FLAGS netlink attribute (spec.md
// §4.8).
type XDPMode uint32

const (
	XDPModeSKB XDPMode = 1 << 1
	XDPModeDrv XDPMode = 1 << 2
	XDPModeHW  XDPMode = 1 << 3
)
