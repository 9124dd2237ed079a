//go:build darwin

package affinity

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// macOS exposes no thread-to-core binding; the scheduler places threads.
const supported = false

func coreIDs() ([]int, error) {
	n, err := unix.SysctlUint32("hw.physicalcpu")
	if err != nil {
		return nil, fmt.Errorf("affinity: sysctl hw.physicalcpu: %w", err)
	}
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return ids, nil
}

func pin(int) error { return nil }
