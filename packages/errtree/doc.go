// Package errtree provides read-only accessors over raised error trees.
//
// An error tree is either a single error (a leaf) or an error group: any
// error implementing Unwrap() []error, as produced by errors.Join and by
// fmt.Errorf with multiple %w verbs. The package handles:
//   - Group detection and child listing (IsGroup, Children)
//   - Depth-first flattening of nested groups (Flatten)
//   - Rendering an error's message together with its supplementary
//     notes for text-pattern matching (Render)
//   - Classifying error types into severity classes (SeverityOf)
//
// The accessors never construct or mutate errors; the trees they walk are
// owned by whatever raised them.
package errtree
