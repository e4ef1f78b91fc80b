// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package ebpf

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadRejectsNonMultipleOf8(t *testing.T) {
	_, err := Load(ProgramSpec{Type: ProgTypeXDP, Instructions: make([]byte, 7)})
	require.Error(t, err)
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "hello", truncate("hello", 10))
	got := truncate(strings.Repeat("a", 100), 10)
	require.Equal(t, strings.Repeat("a", 10)+"...(truncated)", got)
}

func TestProgramCloseIsIdempotent(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer w.Close()

	p := &Program{fd: int(r.Fd())}
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
}
