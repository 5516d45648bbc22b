package rewrite

import "github.com/go-jsobf/jsdeob/internal/allowlist"

// AllowedGlobals is the fixed, closed allow-list from spec.md §6. P4
// (the global-resolver pass) only ever introduces a bare identifier
// that appears in this set.
var AllowedGlobals = allowlist.Globals
