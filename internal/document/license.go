// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package document

import (
	"fmt"
	"path"
	"strings"
)

// NoLicense is the license text when nothing is known.
const NoLicense = "No license file found."

// LicenseText picks the license sentence. A license name from metadata
// wins; otherwise the first root file whose name starts with "license".
func LicenseText(metadataLicense string, files []string) string {
	if metadataLicense != "" {
		return fmt.Sprintf("Distributed under the %s License. See `LICENSE` for more information.", metadataLicense)
	}
	for _, f := range files {
		if strings.Contains(f, "/") {
			continue
		}
		if strings.HasPrefix(strings.ToLower(path.Base(f)), "license") {
			return fmt.Sprintf("This project is licensed under the terms of the `%s` file.", f)
		}
	}
	return NoLicense
}
