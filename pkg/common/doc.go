// Package common provides shared utilities for the medication signature engine.
//
// This package includes:
//   - Pointer helpers (String, Bool, Int, etc.)
//   - Generic Clone function for deep copying
//   - Error types with path context
//   - EngineError kinds and dispatch-collision error types
package common
