// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// SymbolRef represents a symbol extracted from a source file, used to rank
// the key components of a checkout.
type SymbolRef struct {
	Name     string // Symbol name
	FilePath string // Source file path (relative to repo root)
	Line     int    // Line number (1-based)
	Kind     RefKind
}

// RefKind distinguishes symbol definitions from references.
type RefKind int

const (
	Definition RefKind = iota
	Reference
)

// KeyComponent is a ranked source file and its most prominent definitions.
type KeyComponent struct {
	FilePath string   // Path relative to the repository root
	Symbols  []string // Definition names in source order
	Score    float64  // PageRank over the cross-file reference graph
}
