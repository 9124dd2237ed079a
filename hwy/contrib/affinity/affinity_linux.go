// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build linux

package affinity

import (
	"fmt"
	"math"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

const supported = true

// sysfsRoot is swapped in tests.
var sysfsRoot = "/sys/devices/system/cpu"

type coreKey struct {
	pkg, core int
}

// coreIDs walks the process affinity mask and keeps the first logical CPU
// seen for every (package, core) pair. CPUs whose topology is not exposed
// are treated as their own core. The result is capped by the cgroup CPU
// quota when one is set.
func coreIDs() ([]int, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return nil, fmt.Errorf("affinity: sched_getaffinity: %w", err)
	}

	allowed := make([]int, 0, set.Count())
	for cpu := 0; len(allowed) < cap(allowed); cpu++ {
		if set.IsSet(cpu) {
			allowed = append(allowed, cpu)
		}
	}

	ids := dedupeCores(allowed, readTopology)
	if n := cgroupCPULimit(); n > 0 && n < len(ids) {
		ids = ids[:n]
	}
	return ids, nil
}

// dedupeCores keeps the first cpu of each physical core, preserving order.
func dedupeCores(cpus []int, topo func(cpu int) (coreKey, bool)) []int {
	seen := make(map[coreKey]bool, len(cpus))
	ids := make([]int, 0, len(cpus))
	for _, cpu := range cpus {
		key, ok := topo(cpu)
		if !ok {
			ids = append(ids, cpu)
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		ids = append(ids, cpu)
	}
	return ids
}

func readTopology(cpu int) (coreKey, bool) {
	dir := filepath.Join(sysfsRoot, "cpu"+strconv.Itoa(cpu), "topology")
	pkg, err1 := readInt(filepath.Join(dir, "physical_package_id"))
	core, err2 := readInt(filepath.Join(dir, "core_id"))
	if err1 != nil || err2 != nil {
		return coreKey{}, false
	}
	return coreKey{pkg: pkg, core: core}, true
}

func readInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// Swapped in tests.
var (
	procSelfCgroup = "/proc/self/cgroup"
	cgroupRoot     = "/sys/fs/cgroup"
)

// cgroupCPULimit returns the CPU count granted by the cgroup quota of this
// process, or 0 when no quota applies. The process's cgroup is looked up in
// /proc/self/cgroup and every directory from it up to the hierarchy root is
// checked; the tightest quota wins. A path missing from the mount (a
// container without a cgroup namespace) falls through to the root, which is
// then the container's own cgroup.
func cgroupCPULimit() int {
	v2, v1 := "/", "/"
	if data, err := os.ReadFile(procSelfCgroup); err == nil {
		v2, v1 = parseProcCgroup(string(data))
	}

	limit := 0
	if v2 != "" {
		limit = tighter(limit, ancestorLimit(cgroupRoot, v2, cpuMaxAt))
	}
	if v1 != "" {
		for _, ctl := range []string{"cpu,cpuacct", "cpu"} {
			dir := filepath.Join(cgroupRoot, ctl)
			if _, err := os.Stat(dir); err == nil {
				limit = tighter(limit, ancestorLimit(dir, v1, cfsQuotaAt))
				break
			}
		}
	}
	return limit
}

// parseProcCgroup returns the cgroup v2 path and the v1 path of the cpu
// controller from the contents of /proc/<pid>/cgroup. Lines look like
// "0::/user.slice" (v2) or "4:cpu,cpuacct:/docker/abc" (v1). Absent
// hierarchies come back empty.
func parseProcCgroup(s string) (v2, v1 string) {
	for line := range strings.Lines(s) {
		parts := strings.SplitN(strings.TrimSpace(line), ":", 3)
		if len(parts) != 3 {
			continue
		}
		switch {
		case parts[0] == "0" && parts[1] == "":
			v2 = parts[2]
		case slices.Contains(strings.Split(parts[1], ","), "cpu"):
			v1 = parts[2]
		}
	}
	return v2, v1
}

// ancestorLimit applies read to root/cgPath and each of its parents up to
// root, returning the tightest non-zero limit.
func ancestorLimit(root, cgPath string, read func(dir string) int) int {
	limit := 0
	for p := path.Clean("/" + cgPath); ; p = path.Dir(p) {
		limit = tighter(limit, read(filepath.Join(root, p)))
		if p == "/" {
			return limit
		}
	}
}

// tighter combines two CPU limits where 0 means unlimited.
func tighter(a, b int) int {
	if a == 0 || (b > 0 && b < a) {
		return b
	}
	return a
}

func cpuMaxAt(dir string) int {
	data, err := os.ReadFile(filepath.Join(dir, "cpu.max"))
	if err != nil {
		return 0
	}
	return parseCPUMax(string(data))
}

func cfsQuotaAt(dir string) int {
	quota, err1 := os.ReadFile(filepath.Join(dir, "cpu.cfs_quota_us"))
	period, err2 := os.ReadFile(filepath.Join(dir, "cpu.cfs_period_us"))
	if err1 != nil || err2 != nil {
		return 0
	}
	return quotaCPUs(strings.TrimSpace(string(quota)), strings.TrimSpace(string(period)))
}

// parseCPUMax parses "<quota> <period>" or "max <period>".
func parseCPUMax(s string) int {
	fields := strings.Fields(s)
	if len(fields) < 2 || fields[0] == "max" {
		return 0
	}
	return quotaCPUs(fields[0], fields[1])
}

// quotaCPUs rounds a fractional quota up: 1.5 CPUs of time keep two workers
// busy half the time rather than one worker all of it.
func quotaCPUs(quotaStr, periodStr string) int {
	quota, err1 := strconv.ParseFloat(quotaStr, 64)
	period, err2 := strconv.ParseFloat(periodStr, 64)
	if err1 != nil || err2 != nil || quota <= 0 || period <= 0 {
		return 0
	}
	return int(math.Ceil(quota / period))
}

func pin(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: pin to cpu %d: %w", cpu, err)
	}
	return nil
}
