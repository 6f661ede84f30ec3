// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package thread

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID generates a unique identifier: a random fragment joined with a
// high-resolution timestamp. The combination makes collisions practically
// impossible without any central counter, and the timestamp part keeps ids
// roughly sortable by creation time when debugging state files by hand.
func NewID(prefix string) string {
	frag := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	ts := strconv.FormatInt(time.Now().UnixNano(), 36)
	return prefix + "_" + frag + "_" + ts
}
