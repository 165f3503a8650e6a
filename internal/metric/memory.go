package metric

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/jeanremacle/benchmark-framework/internal/model"
)

// defaultSampleInterval is how often PeakMemory polls the child's RSS.
const defaultSampleInterval = 10 * time.Millisecond

// PeakMemory runs the entry point and samples the child process resident
// set while it executes. Value is the peak RSS in mebibytes. Sampling can
// miss short-lived spikes; the metadata reports how many samples were
// taken so readers can judge the resolution.
type PeakMemory struct {
	Base
	def      model.MetricDefinition
	interval time.Duration
}

// NewPeakMemory is the registered factory for PeakMemory.
func NewPeakMemory(def model.MetricDefinition) (Metric, error) {
	return &PeakMemory{def: def, interval: defaultSampleInterval}, nil
}

func (m *PeakMemory) Measure(ctx context.Context, target Target) (Result, error) {
	cmd, err := CommandFor(ctx, target)
	if err != nil {
		return Result{}, err
	}

	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return Result{}, exitErrorf(err, stderr.Bytes())
	}

	proc, procErr := process.NewProcess(int32(cmd.Process.Pid))

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var peak uint64
	samples := 0
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	var waitErr error
	for waiting := true; waiting; {
		select {
		case waitErr = <-done:
			waiting = false
		case <-ticker.C:
			if procErr != nil {
				continue
			}
			info, err := proc.MemoryInfo()
			if err != nil {
				// Process likely exited between the tick and the probe.
				continue
			}
			samples++
			if info.RSS > peak {
				peak = info.RSS
			}
		}
	}

	if waitErr != nil {
		return Result{}, exitErrorf(waitErr, stderr.Bytes())
	}

	return Result{
		Value: float64(peak) / (1 << 20),
		Unit:  unitOr(m.def.Unit, "MiB"),
		Metadata: map[string]any{
			"samples":   samples,
			"exit_code": 0,
		},
	}, nil
}
