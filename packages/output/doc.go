// Package output renders match failures for terminal display.
//
// The console formatter produces human-readable colored output:
//   - A red headline for the failed assertion
//   - The expectation that was declared
//   - The composed mismatch diagnostic, indented
//   - The raised error, in verbose mode
//
// Color is stripped automatically with WithNoColor, for CI logs and
// tests.
package output
