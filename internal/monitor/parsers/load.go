// Package parsers turns the raw output of remote load commands into numbers.
package parsers

import (
	"fmt"
	"strconv"
	"strings"
)

// LoadAvg is a parsed load sample.
// Running, Total and LastPID are only filled from /proc/loadavg.
type LoadAvg struct {
	Avg     [3]float64 // 1, 5 and 15 minute averages
	Running int        // Runnable scheduling entities
	Total   int        // Total scheduling entities
	LastPID int
}

// ParseLoad recognises the output of `cat /proc/loadavg`, `uptime` and
// `sysctl -n vm.loadavg`.
func ParseLoad(output string) (LoadAvg, error) {
	s := strings.TrimSpace(output)
	if s == "" {
		return LoadAvg{}, fmt.Errorf("empty load output")
	}

	if strings.Contains(s, "load average") {
		return ParseUptime(s)
	}
	if strings.HasPrefix(s, "{") {
		return ParseSysctlLoadavg(s)
	}
	return ParseProcLoadavg(s)
}

// ParseProcLoadavg parses Linux /proc/loadavg:
//
//	0.42 0.38 0.35 1/203 9821
func ParseProcLoadavg(output string) (LoadAvg, error) {
	var load LoadAvg

	fields := strings.Fields(strings.TrimSpace(output))
	if len(fields) < 3 {
		return load, fmt.Errorf("invalid /proc/loadavg: %q", output)
	}

	for i := 0; i < 3; i++ {
		val, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return load, fmt.Errorf("failed to parse loadavg field %d: %w", i, err)
		}
		load.Avg[i] = val
	}

	if len(fields) >= 4 {
		running, total, ok := strings.Cut(fields[3], "/")
		if !ok {
			return load, fmt.Errorf("invalid loadavg task field: %q", fields[3])
		}
		var err error
		if load.Running, err = strconv.Atoi(running); err != nil {
			return load, fmt.Errorf("failed to parse running tasks: %w", err)
		}
		if load.Total, err = strconv.Atoi(total); err != nil {
			return load, fmt.Errorf("failed to parse total tasks: %w", err)
		}
	}

	if len(fields) >= 5 {
		pid, err := strconv.Atoi(fields[4])
		if err != nil {
			return load, fmt.Errorf("failed to parse last pid: %w", err)
		}
		load.LastPID = pid
	}

	return load, nil
}

// ParseUptime parses the tail of uptime(1) output. Linux separates values
// with commas, macOS with spaces:
//
//	10:01  up 3 days, 2 users, load averages: 1.23 2.34 3.45
//	10:01:02 up 3 days,  2 users,  load average: 0.42, 0.38, 0.35
func ParseUptime(output string) (LoadAvg, error) {
	var load LoadAvg

	idx := strings.LastIndex(output, "load average")
	if idx < 0 {
		return load, fmt.Errorf("no load average in uptime output: %q", output)
	}
	colonIdx := strings.Index(output[idx:], ":")
	if colonIdx < 0 {
		return load, fmt.Errorf("invalid uptime output: %q", output)
	}

	values := strings.ReplaceAll(output[idx+colonIdx+1:], ",", " ")
	if err := parseTriple(strings.Fields(values), &load); err != nil {
		return load, fmt.Errorf("invalid uptime output: %w", err)
	}
	return load, nil
}

// ParseSysctlLoadavg parses BSD/macOS `sysctl -n vm.loadavg`:
//
//	{ 1.23 2.34 3.45 }
func ParseSysctlLoadavg(output string) (LoadAvg, error) {
	var load LoadAvg

	s := strings.TrimSpace(output)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	if err := parseTriple(strings.Fields(s), &load); err != nil {
		return load, fmt.Errorf("invalid vm.loadavg: %w", err)
	}
	return load, nil
}

func parseTriple(fields []string, load *LoadAvg) error {
	if len(fields) < 3 {
		return fmt.Errorf("want 3 load values, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		val, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return fmt.Errorf("failed to parse load field %d: %w", i, err)
		}
		load.Avg[i] = val
	}
	return nil
}
