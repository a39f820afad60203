// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package contract

import (
	"os"
	"strconv"
)

const (
	// DefaultMaxSourceFileBytes is the baseline limit for a single scanned source file.
	DefaultMaxSourceFileBytes = 4 << 20 // 4 MiB

	// DefaultMaxDescriptionBytes is the baseline limit for the project description.
	DefaultMaxDescriptionBytes = 16 << 10 // 16 KiB

	// DefaultMaxReadmeBytes is how much of a README the context miner will consume.
	DefaultMaxReadmeBytes = 64 << 10 // 64 KiB
)

// MaxSourceFileBytes returns the effective size limit for a scanned source file.
// Controlled via env SPECGEN_MAX_SOURCE_FILE_BYTES; falls back to DefaultMaxSourceFileBytes.
// Files above the limit are skipped with a warning, never parsed partially.
func MaxSourceFileBytes() int {
	return envBytes("SPECGEN_MAX_SOURCE_FILE_BYTES", DefaultMaxSourceFileBytes)
}

// MaxDescriptionBytes returns the effective size limit for the project description.
// Controlled via env SPECGEN_MAX_DESCRIPTION_BYTES; falls back to DefaultMaxDescriptionBytes.
func MaxDescriptionBytes() int {
	return envBytes("SPECGEN_MAX_DESCRIPTION_BYTES", DefaultMaxDescriptionBytes)
}

// MaxReadmeBytes returns how many README bytes the context miner consumes.
// Controlled via env SPECGEN_MAX_README_BYTES; falls back to DefaultMaxReadmeBytes.
// Longer READMEs are truncated, not rejected.
func MaxReadmeBytes() int {
	return envBytes("SPECGEN_MAX_README_BYTES", DefaultMaxReadmeBytes)
}

func envBytes(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	OK      bool
	Message string
}

// ValidateDescription performs basic validation on a project description.
// It checks only the size limit; emptiness is the caller's concern because
// an empty description is fatal only when spec generation was requested.
func ValidateDescription(description string) *ValidationResult {
	if len(description) > MaxDescriptionBytes() {
		return &ValidationResult{
			OK:      false,
			Message: "description exceeds size limit",
		}
	}
	return &ValidationResult{OK: true}
}
