// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package progtype

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetrabpf/goebpf/asm"
	"github.com/tetrabpf/goebpf/internal/arch"
)

func TestSectionNames(t *testing.T) {
	require.Equal(t, "xdp", XDP{}.SectionName())
	require.Equal(t, "tc/ingress/eth0", TC{}.SectionName("ingress", "eth0"))
	require.Equal(t, "tc/egress", TC{}.SectionName("egress", ""))
	require.Equal(t, "kprobe/do_sys_open", KprobeSection("do_sys_open", false))
	require.Equal(t, "kretprobe/do_sys_open", KprobeSection("do_sys_open", true))
	require.Equal(t, "uprobe/libc.so.6:malloc", UprobeSection("libc.so.6", "malloc", false))
	require.Equal(t, "uretprobe/libc.so.6:malloc", UprobeSection("libc.so.6", "malloc", true))
	require.Equal(t, "tracepoint/syscalls/sys_enter_open", TracepointSection("syscalls", "sys_enter_open"))
	require.Equal(t, "raw_tracepoint/sched_switch", RawTracepointSection("sched_switch"))
	require.Equal(t, "iter/task", IterSection("task"))
	require.Equal(t, "fentry/tcp_connect", FentrySection("tcp_connect"))
	require.Equal(t, "fexit/tcp_connect", FexitSection("tcp_connect"))
	require.Equal(t, "fmod_ret/tcp_connect", FmodRetSection("tcp_connect"))
	require.Equal(t, "struct_ops/ssthresh", StructOpsSection("ssthresh"))
}

// TestPrologueContextSize is spec.md §8's "prologue never reads past the
// context struct" property, checked for every fixed-size context module.
func TestPrologueContextSize(t *testing.T) {
	cases := []struct {
		name    string
		size    int
		offsets []int16
	}{
		{"xdp", XDP{}.ContextSize(), []int16{XDPCtx.Data, XDPCtx.DataEnd, XDPCtx.DataMeta, XDPCtx.EgressIfindex}},
		{"tc", TC{}.ContextSize(), []int16{TCCtx.Data, TCCtx.DataEnd, TCCtx.DataMeta}},
		{"sk_lookup", SKLookup{}.ContextSize(), []int16{SKLookupCtx.LocalPort, SKLookupCtx.IngressIfindex}},
		{"flow_dissector", FlowDissector{}.ContextSize(), []int16{FlowDissectorCtx.FlowKeys}},
		{"sk_msg", SKMSG{}.ContextSize(), []int16{SKMSGCtx.LocalPort}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for _, off := range c.offsets {
				require.LessOrEqual(t, int(off)+4, c.size, "offset %d exceeds declared context size %d for %s", off, c.size, c.name)
			}
		})
	}
}

func TestXDPPrologueEncodes(t *testing.T) {
	nodes := XDP{}.Prologue(asm.R6, asm.R7, asm.R8)
	require.Len(t, nodes, 3)
	for _, n := range nodes {
		ins, ok := n.(asm.Instruction)
		require.True(t, ok)
		_, err := ins.Encode()
		require.NoError(t, err)
	}
}

func TestTCEpilogueSetsReturnCode(t *testing.T) {
	nodes := TC{}.Epilogue(TCActShot)
	require.Len(t, nodes, 2)
	mov, ok := nodes[0].(asm.Instruction)
	require.True(t, ok)
	require.Equal(t, asm.R0, mov.Dst)
	require.Equal(t, int32(TCActShot), mov.Imm)
}

func TestProbeLoadArgRange(t *testing.T) {
	p := Probe{Arch: arch.X86_64}
	_, err := p.LoadArg(asm.R6, asm.R1, 0)
	require.NoError(t, err)
	_, err = p.LoadArg(asm.R6, asm.R1, 6)
	require.Error(t, err)
	_, err = p.LoadArg(asm.R6, asm.R1, -1)
	require.Error(t, err)
}

func TestProbeUnknownArch(t *testing.T) {
	p := Probe{Arch: arch.Unknown}
	_, err := p.LoadArg(asm.R6, asm.R1, 0)
	require.Error(t, err)
}

func TestNewProbeDetectsHostArch(t *testing.T) {
	p := NewProbe()
	require.Equal(t, arch.Detect(), p.Arch)
}
