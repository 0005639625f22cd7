// Package querybuilder renders SQL statement templates into a list of
// labelled statements.
//
// A QueryBuilder compiles a template once and renders it any number of times
// against a bindings map. The rendered text has its /* block */ and -- line
// (or # line) comments removed, is split on ";", and every non-blank segment
// becomes one statement of the form
//
//	-- <prefix> (#<ordinal>) --
//	<statement>
//
// where ordinal is the 1-based position of the segment in the split, blank
// segments included. Nothing is parsed or validated: comment markers and
// semicolons inside string literals are not recognised.
package querybuilder
