// Package pattern compiles declarative YAML expectation documents into
// match groups, so data-driven test suites can declare expected error
// groups next to their inputs.
//
// A document looks like:
//
//	group:
//	  flatten: true
//	  expected:
//	    - type: TimeoutError
//	    - matcher:
//	        type: PathError
//	        match: "no such file"
//	    - group:
//	        expected:
//	          - type: DNSError
//
// Type names resolve against a caller-supplied Registry. Check functions
// are not expressible in YAML; attach them in code after loading. All
// invalid combinations surface as load errors, the same ones the match
// constructors would report.
package pattern
