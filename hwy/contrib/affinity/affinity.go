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

// Package affinity enumerates physical CPU cores and pins OS threads to them.
//
// GEMM kernels saturate the FMA units of a core, so running two workers on
// the hyperthreads of one physical core only adds contention. CoreIDs picks
// one logical CPU per physical core; Pin binds the calling OS thread to a
// logical CPU on platforms that support thread affinity.
//
// Callers that pin must hold the OS thread for the goroutine first:
//
//	runtime.LockOSThread()
//	if err := affinity.Pin(cpu); err != nil { ... }
package affinity

// CoreIDs returns the logical CPU ids to run one worker each on, one per
// physical core, in ascending order. The list is never empty when err is nil.
func CoreIDs() ([]int, error) {
	ids, err := coreIDs()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []int{0}, nil
	}
	return ids, nil
}

// PhysicalCores returns the number of physical cores available to this
// process, at least 1.
func PhysicalCores() int {
	ids, err := CoreIDs()
	if err != nil || len(ids) == 0 {
		return 1
	}
	return len(ids)
}

// Pin binds the calling OS thread to logical CPU cpu. It is a no-op where
// Supported reports false.
func Pin(cpu int) error {
	return pin(cpu)
}

// Supported reports whether Pin actually restricts thread placement on this
// platform.
func Supported() bool {
	return supported
}
