// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package ebpf

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/tetrabpf/goebpf/ebpferr"
)

// Config is the structured options record spec.md §6 calls for; every
// field has a documented default and may be overridden by a goebpf.yaml or
// GOEBPF_* environment variable.
type Config struct {
	BPFFSPath       string
	VmlinuxBTFPath  string
	VerifierLogSize uint32
	PollTimeoutMS   int
	RingBufferPages int
	PerfBufferPages int
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		BPFFSPath:       "/sys/fs/bpf",
		VmlinuxBTFPath:  "/sys/kernel/btf/vmlinux",
		VerifierLogSize: 16 << 20,
		PollTimeoutMS:   100,
		RingBufferPages: 8,
		PerfBufferPages: 8,
	}
}

var recognizedKeys = map[string]bool{
	"bpf_fs_path":       true,
	"vmlinux_btf_path":  true,
	"verifier_log_size": true,
	"poll_timeout_ms":   true,
	"ring_buffer_pages": true,
	"perf_buffer_pages": true,
}

// LoadConfig overlays DefaultConfig() with goebpf.yaml (searched in the
// given dirs) and GOEBPF_* environment variables, rejecting any key it
// does not recognize (spec.md §9's "dynamic option maps" strategy: reject
// unknown options at build time with a listed-alternatives message).
func LoadConfig(searchDirs ...string) (Config, error) {
	v := viper.New()
	v.SetConfigName("goebpf")
	v.SetConfigType("yaml")
	for _, d := range searchDirs {
		v.AddConfigPath(d)
	}
	v.SetEnvPrefix("GOEBPF")
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("bpf_fs_path", def.BPFFSPath)
	v.SetDefault("vmlinux_btf_path", def.VmlinuxBTFPath)
	v.SetDefault("verifier_log_size", def.VerifierLogSize)
	v.SetDefault("poll_timeout_ms", def.PollTimeoutMS)
	v.SetDefault("ring_buffer_pages", def.RingBufferPages)
	v.SetDefault("perf_buffer_pages", def.PerfBufferPages)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, ebpferr.New("LoadConfig", ebpferr.KindEncoding, "failed to read goebpf.yaml", err)
		}
	}

	for _, key := range v.AllKeys() {
		if !recognizedKeys[key] {
			alts := make([]string, 0, len(recognizedKeys))
			for k := range recognizedKeys {
				alts = append(alts, k)
			}
			return Config{}, ebpferr.New("LoadConfig", ebpferr.KindEncoding,
				fmt.Sprintf("unrecognized config key %q, known keys: %s", key, strings.Join(alts, ", ")), nil)
		}
	}

	return Config{
		BPFFSPath:       v.GetString("bpf_fs_path"),
		VmlinuxBTFPath:  v.GetString("vmlinux_btf_path"),
		VerifierLogSize: uint32(v.GetUint64("verifier_log_size")),
		PollTimeoutMS:   v.GetInt("poll_timeout_ms"),
		RingBufferPages: v.GetInt("ring_buffer_pages"),
		PerfBufferPages: v.GetInt("perf_buffer_pages"),
	}, nil
}
