// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package archetype

import (
	"path"
	"strings"

	"github.com/petar-djukic/go-readme/pkg/types"
)

// Display limits for the project-structure listing.
const (
	MaxInventoryDepth = 3  // Directory levels below the root
	MaxInventoryFiles = 15 // Paths retained for display
)

// Inventory selects the display listing from the full file list: files
// at most three directories deep whose names do not start with a dot,
// capped at fifteen entries in list order. Classification never uses it.
func Inventory(files []string) types.FileInventory {
	var inv types.FileInventory
	for _, f := range files {
		if len(inv) == MaxInventoryFiles {
			break
		}
		if strings.Count(f, "/") > MaxInventoryDepth {
			continue
		}
		if strings.HasPrefix(path.Base(f), ".") {
			continue
		}
		inv = append(inv, f)
	}
	return inv
}
