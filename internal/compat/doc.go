// Package compat compiles a legacy configuration into the native
// theme model: a resolved namespace with provenance, utility and
// variant registries, and content scanning descriptors.
//
// One compile runs the stages in a fixed order:
//
//	load config ─► resolve preset/plugin refs ─► fold presets
//	     │
//	     ▼
//	merge plugin static fragments ─► normalize
//	     │
//	     ▼
//	baseline ─► apply theme (config) ─► font shim ─► native CSS
//	     │
//	     ▼
//	dark mode reconcile ─► run plugins ─► font shim ─► output
//
// Module load failures and plugin failures are fatal; there is no
// partial output. Malformed values inside a loaded config degrade
// per-leaf instead, keeping the rest of the compile intact.
package compat
