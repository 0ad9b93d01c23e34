// Package t2048 implements the 2048 sliding-block puzzle.
//
// The Engine owns a 4x4 Grid of identified tiles. Each Move slides every
// row or column toward the direction of travel, merges equal neighbours at
// most once per tile, and spawns two new tiles when the board changed.
// Game wraps the Engine for the fixed-tick terminal platform.
package t2048
