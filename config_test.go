// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package ebpf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWithNoFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverlaysYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "goebpf.yaml"), []byte("poll_timeout_ms: 250\nbpf_fs_path: /mnt/bpf\n"), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	require.Equal(t, 250, cfg.PollTimeoutMS)
	require.Equal(t, "/mnt/bpf", cfg.BPFFSPath)
	require.Equal(t, DefaultConfig().VmlinuxBTFPath, cfg.VmlinuxBTFPath, "keys absent from the file keep their default")
}

func TestLoadConfigRejectsUnrecognizedKey(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "goebpf.yaml"), []byte("totally_made_up_key: 1\n"), 0o644))

	_, err := LoadConfig(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "totally_made_up_key")
}
