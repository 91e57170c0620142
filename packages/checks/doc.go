// Package checks provides ready-made check functions for match.WithCheck
// and match.WithGroupCheck.
//
// Included checks:
//   - JSONPath: compare a value inside an error's JSON body (gjson path syntax)
//   - JSONSchema: validate an error's JSON body against a JSON Schema
//   - MessageContains: substring test on the rendered error text
//   - GroupLen: exact child count of an error group
//
// All checks return plain func(error) bool values and can be freely
// combined with custom closures.
package checks
