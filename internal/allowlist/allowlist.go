// Package allowlist holds the one fixed, closed list of global
// identifier names spec.md §6 allows P4 (the resolver-inlining pass)
// to introduce. It is kept separate from internal/rewrite because
// internal/discover needs the same list to validate a candidate
// resolver's case targets during discovery, before any rewrite pass
// runs, and internal/rewrite in turn needs discover's output — so the
// list lives where both can reach it without a package cycle.
package allowlist

// Globals is the fixed allow-list from spec.md §6.
var Globals = build()

func build() map[string]bool {
	names := []string{
		"Object", "Array", "String", "Number", "Boolean", "Function", "Symbol",
		"Date", "RegExp", "Error", "TypeError", "RangeError", "SyntaxError",
		"ReferenceError", "Promise", "Map", "Set", "WeakMap", "WeakSet", "Proxy",
		"Reflect", "ArrayBuffer", "DataView", "SharedArrayBuffer", "Int8Array",
		"Uint8Array", "Uint8ClampedArray", "Int16Array", "Uint16Array",
		"Int32Array", "Uint32Array", "Float32Array", "Float64Array",
		"BigInt64Array", "BigUint64Array", "TextEncoder", "TextDecoder", "URL",
		"URLSearchParams", "Blob", "File", "FileReader", "FormData", "Request",
		"Response", "Headers", "AbortController", "XMLHttpRequest", "fetch",
		"WebSocket", "EventSource", "BroadcastChannel", "Worker", "SharedWorker",
		"ServiceWorker", "crypto", "Crypto", "SubtleCrypto", "CryptoKey",
		"performance", "Performance", "PerformanceObserver", "navigator",
		"Navigator", "location", "Location", "history", "History",
		"localStorage", "sessionStorage", "Storage", "indexedDB", "IDBFactory",
		"console", "Console", "document", "Document", "window", "Window", "self",
		"globalThis", "global", "setTimeout", "setInterval", "clearTimeout",
		"clearInterval", "requestAnimationFrame", "cancelAnimationFrame",
		"queueMicrotask", "atob", "btoa", "eval", "isNaN", "isFinite",
		"parseInt", "parseFloat", "encodeURI", "decodeURI", "encodeURIComponent",
		"decodeURIComponent", "JSON", "Math", "Intl", "Atomics", "NaN",
		"Infinity", "undefined", "structuredClone", "process", "Buffer",
		"require", "module", "exports", "__dirname", "__filename",
	}
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
