package runner

import (
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/jeanremacle/benchmark-framework/internal/model"
)

// Environment captures a snapshot of the machine executing a run. The
// snapshot is attached to every result so numbers taken on different hosts
// or toolchain versions are never compared blind.
//
// Host lookup failures are not errors: the snapshot falls back to what the
// Go runtime knows about itself.
func Environment() map[string]string {
	env := map[string]string{
		"platform":        runtime.GOOS,
		"machine":         runtime.GOARCH,
		"go_version":      runtime.Version(),
		"harness_version": model.HarnessVersion,
	}
	info, err := host.Info()
	if err != nil {
		return env
	}
	if info.Platform != "" {
		env["platform"] = strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
	}
	if info.Hostname != "" {
		env["hostname"] = info.Hostname
	}
	if info.KernelVersion != "" {
		env["kernel_version"] = info.KernelVersion
	}
	return env
}
