// Package plugin executes legacy plugin functions against the resolved
// theme and collects their contributions.
//
// A plugin is an opaque callback invoked through a capability object:
// the runtime hands each plugin an API value exposing a read-only theme
// accessor and registration functions for utilities and variants. The
// plugin itself is never introspected.
//
// Plugins run in declaration order. A later plugin's registration for a
// name overwrites an earlier plugin's, but never a registration that
// originated from native CSS syntax. A plugin that declares a static
// config fragment has that fragment merged into the config before the
// theme resolves (the fragment phase); the function itself runs after
// resolution (the execution phase).
//
// A plugin function failure is fatal for the whole compile: partially
// applied contributions would leave the registries inconsistent, so no
// rollback is attempted.
package plugin
