// Package params builds template bindings from files and NAME=VALUE pairs.
// LoadFile reads YAML, JSON (comments allowed) or "KEY VALUE" status files
// into a map; ParseVars applies NAME=VALUE overrides whose values may refer to
// already loaded keys with single-brace {KEY} placeholders; Load combines
// both in a single call.
package params
