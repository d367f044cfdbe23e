// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "time"

// StalenessThreshold is the timestamp gap beyond which the target is assumed
// to have been replaced by an external update. It is a heuristic: a rewrite
// within the threshold goes undetected.
const StalenessThreshold = 60 * time.Second

// IsStale reports whether the target's timestamp diverges from the backup's
// by strictly more than StalenessThreshold, in either direction.
func IsStale(backupTime, targetTime time.Time) bool {
	gap := targetTime.Sub(backupTime)
	if gap < 0 {
		gap = -gap
	}

	return gap > StalenessThreshold
}
