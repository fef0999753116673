package domain

import (
	"fmt"
	"regexp"
)

// RemoveFunctionPrototype strips declarations of the named function from a
// copied header so the locally defined function does not clash with its
// original prototype.
//
// This is a text substitution, not a re-parse: it matches a call-style
// signature for the exact name, terminated by a semicolon, tolerating an
// optional return-type/qualifier prefix on the same declaration. Prototypes
// split across unusual macro constructs or K&R-style declarations are beyond
// its reach.
func RemoveFunctionPrototype(text, funcName string) string {
	pattern := regexp.MustCompile(fmt.Sprintf(
		`(?s)(^|\n)[ \t]*(?:[A-Za-z_][\w\s*(),\[\]:]*?\s+)?%s\s*\([^;{]*\)\s*;[ \t]*`,
		regexp.QuoteMeta(funcName),
	))

	return pattern.ReplaceAllString(text, "$1")
}
