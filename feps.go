// Package feps provides a top-level convenience entry point for creating a
// FEPS episodic memory with minimal boilerplate.
//
// Usage:
//
//	import "github.com/fepslab/feps"
//
//	mem, err := feps.New(feps.Config{NumClones: 2, Seed: 42}, logger)
//	mem.Initialize([]string{"center", "edge", "corner"})
//
// This is a thin wrapper around [memory.New]; both produce identical
// results. Use this package when you prefer the shorter import path.
package feps

import (
	"go.uber.org/zap"

	"github.com/fepslab/feps/memory"
)

// Config configures the memory created by [New].
type Config = memory.Config

// Memory is the FEPS episodic memory.
type Memory = memory.Memory

// New creates a [memory.Memory]. Initialize must be called before any other
// operation.
func New(cfg Config, logger *zap.Logger) (*Memory, error) {
	return memory.New(cfg, logger)
}
