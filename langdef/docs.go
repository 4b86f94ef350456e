/*
Package langdef builds grammar.Grammar from an atom catalog and renders it as a text artifact.

Prefix codes are split by length into short (one character) and long prefixes, base and metric
unit codes form the metric terminal class, the rest are non-metric. All classes are sorted,
so the same catalog always yields the same grammar.

Production rules are fixed:
*/
//  main_term: DIVIDE term | term
//  term: term DOT component | term DIVIDE component | component
//  component: annotatable ANNOTATION | annotatable
//  annotatable: simple_unit EXPONENT | simple_unit | ANNOTATION
//      | LPAREN main_term RPAREN | LPAREN term RPAREN | LPAREN component RPAREN
//  simple_unit: METRIC | SHORT_PREFIX METRIC | LONG_PREFIX METRIC | NON_METRIC | FACTOR
/*
A component consisting of an annotation only cannot take a second annotation,
parenthesized groups take no exponent.

Text artifact lists production rules, one alternative per line,
followed by terminal classes, one terminal per paragraph:

	SHORT_PREFIX: "E" | "G" | "M" | "P" | "T" | "Y" | "Z" | "a" | "c" | "d" | "f" | "h" | "k"
	    | "m" | "n" | "p" | "u" | "y" | "z"

Literal alternatives are wrapped at given line width, pattern terminals are written as /regexp/.
*/
package langdef
