// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package rpnc

import "nickandperla.net/rpnc/internal/stdlib"

// DefaultPrelude contains the utility macros that are automatically loaded
// unless -no-stdlib is specified. Same format as a macro file; lines
// starting with # are skipped.
var DefaultPrelude = stdlib.Prelude
