// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package asm

import (
	"fmt"

	"github.com/tetrabpf/goebpf/ebpferr"
)

// Program is an ordered list of Nodes (Instructions and Labels) awaiting
// assembly. It is the DSL's single entry point: builders in this package
// return Instruction values, and callers (typically the progtype package)
// compose them into a Program with Add, interleaving Label nodes at jump
// targets.
type Program struct {
	nodes []Node
}

// NewProgram starts an empty Program, optionally seeded with nodes.
func NewProgram(nodes ...Node) *Program {
	return &Program{nodes: append([]Node(nil), nodes...)}
}

// Add appends nodes and returns the Program for chaining.
func (p *Program) Add(nodes ...Node) *Program {
	p.nodes = append(p.nodes, nodes...)
	return p
}

// Len returns the number of nodes currently queued (instructions + labels),
// not the resolved instruction-slot count.
func (p *Program) Len() int { return len(p.nodes) }

// labelPositions runs the assembler's first pass: it walks the node list
// counting instruction slots (a wide instruction counts as 2, per spec.md
// §4.2) and records the slot index of every Label without emitting
// anything for it.
func (p *Program) labelPositions() (map[Label]int, error) {
	positions := make(map[Label]int)
	slot := 0
	for _, n := range p.nodes {
		switch v := n.(type) {
		case Label:
			if _, dup := positions[v]; dup {
				return nil, ebpferr.New("asm.Assemble", ebpferr.KindLabel, fmt.Sprintf("label %q defined twice", v), nil)
			}
			positions[v] = slot
		case Instruction:
			slot += v.size()
		default:
			return nil, ebpferr.New("asm.Assemble", ebpferr.KindEncoding, "unknown node type", nil)
		}
	}
	return positions, nil
}

// Instructions runs both assembler passes and returns the fully resolved
// instruction list (labels stripped, jump Off fields patched in) without
// encoding to bytes. Useful for inspection/testing and for the BTF
// relocation pass, which rewrites immediates by instruction-byte-offset and
// needs to know where each instruction starts.
func (p *Program) Instructions() ([]Instruction, error) {
	positions, err := p.labelPositions()
	if err != nil {
		return nil, err
	}

	out := make([]Instruction, 0, len(p.nodes))
	slot := 0
	for _, n := range p.nodes {
		ins, ok := n.(Instruction)
		if !ok {
			continue // Label, already consumed in pass 1
		}
		afterSlot := slot + ins.size()
		if target, hasTarget := ins.Target(); hasTarget {
			targetSlot, known := positions[target]
			if !known {
				return nil, ebpferr.New("asm.Assemble", ebpferr.KindLabel, fmt.Sprintf("unknown label %q", target), nil)
			}
			delta := targetSlot - afterSlot
			if err := checkOff16("asm.Assemble", int64(delta)); err != nil {
				return nil, ebpferr.New("asm.Assemble", ebpferr.KindLabel, fmt.Sprintf("branch to %q is %d slots, too far", target, delta), err)
			}
			ins.Off = int16(delta)
			ins.target = ""
		}
		out = append(out, ins)
		slot = afterSlot
	}
	return out, nil
}

// Assemble runs the two-pass assembler and serializes the result to bytes:
// pass 1 (labelPositions) computes every label's slot index; pass 2
// (Instructions) patches jump offsets and this method then encodes each
// resolved instruction in order. Assemble is idempotent: calling it twice
// on the same Program with the same node order yields byte-identical
// output, since nothing here depends on map iteration order or wall-clock
// state.
func (p *Program) Assemble() ([]byte, error) {
	instructions, err := p.Instructions()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(instructions)*8)
	for _, ins := range instructions {
		b, err := ins.Encode()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}
