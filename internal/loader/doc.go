// Package loader reads legacy configuration modules from disk and
// hands them to the merge pipeline as ordered config trees.
//
// Two formats are supported, dispatched on file extension:
//
//	.lua   executable configs, run in a restricted interpreter
//	.json  inert configs, decoded preserving key order
//
// A Lua config is a script whose final expression is the config table.
// Function values inside its theme subtree become deferred values that
// re-evaluate against the final theme. Function values in its plugins
// list become runnable plugin handlers bound to the interpreter that
// produced them.
//
//	┌──────────┐   ref    ┌──────────┐  *Result  ┌──────────┐
//	│ pipeline │ ───────► │  Cached  │ ────────► │ Dispatch │
//	└──────────┘          └──────────┘           └────┬─────┘
//	                                                  │ ext
//	                                       ┌──────────┴─────────┐
//	                                       ▼                    ▼
//	                                 ┌───────────┐       ┌────────────┐
//	                                 │ LuaLoader │       │ JSONLoader │
//	                                 └───────────┘       └────────────┘
//
// Loading the same ref twice through a Cached loader returns the same
// Result, so an executable config's side effects run once per compile.
package loader
