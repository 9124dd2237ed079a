// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"

	"github.com/ajroetker/go-ggblas/hwy"
	"github.com/ajroetker/go-ggblas/hwy/contrib/affinity"
	"github.com/ajroetker/go-ggblas/hwy/contrib/workerpool"
)

// Environment variables read once, when the default pool is built.
const (
	// EnvNumWorkers caps the number of workers (default: one per physical core).
	EnvNumWorkers = "GGBLAS_NUM_WORKERS"

	// EnvNoAffinity, when true, leaves workers unpinned.
	EnvNoAffinity = "GGBLAS_NO_AFFINITY"
)

var (
	defaultPoolOnce sync.Once
	defaultPool     *workerpool.Pool
)

// DefaultPool returns the process-wide pool used by the batched entry points.
//
// The pool is built on first use and never resized or closed. It has one
// worker per physical core, each pinned to a distinct core in enumeration
// order where the platform supports it. Failing to enumerate or pin the cores
// panics: the engine has no way to run without its pool.
func DefaultPool() *workerpool.Pool {
	defaultPoolOnce.Do(func() {
		pool, err := buildPool(loadPoolConfig(os.Getenv))
		if err != nil {
			panic(fmt.Errorf("matmul: building default pool: %w", err))
		}
		defaultPool = pool
	})
	return defaultPool
}

type poolConfig struct {
	numWorkers int // 0 means one per physical core
	noAffinity bool
}

// loadPoolConfig reads the pool settings; unparsable values are ignored.
func loadPoolConfig(getenv func(string) string) poolConfig {
	var cfg poolConfig
	if v := getenv(EnvNumWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.numWorkers = n
		}
	}
	if v := getenv(EnvNoAffinity); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.noAffinity = b
		}
	}
	return cfg
}

func buildPool(cfg poolConfig) (*workerpool.Pool, error) {
	ids, err := affinity.CoreIDs()
	if err != nil {
		return nil, err
	}
	if cfg.numWorkers > 0 && cfg.numWorkers < len(ids) {
		ids = ids[:cfg.numWorkers]
	}

	var pool *workerpool.Pool
	if cfg.noAffinity || !affinity.Supported() {
		pool = workerpool.New(len(ids))
	} else if pool, err = workerpool.NewPinned(ids); err != nil {
		return nil, err
	}

	slog.Debug("ggblas worker pool ready",
		"workers", pool.NumWorkers(),
		"pinned", pool.Pinned(),
		"cores", ids,
		"registers", hwy.CurrentName())
	return pool, nil
}
