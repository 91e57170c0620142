// Package capture holds the deferred result of a scoped assertion block.
//
// A Handle is created empty when the block is entered and filled at most
// once, on exit, only if the raised error matched the declared
// expectation. After fill it exposes:
//   - The verified error value (Value)
//   - Its concrete type (Type)
//   - The stack captured at verification time (Stack)
//
// Accessors fail fast while the handle is still pending, rather than
// returning zero values that would make a test pass vacuously.
package capture
