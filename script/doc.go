// Package script implements a small expression language for building
// scenes out of multivectors.
//
// A script is a sequence of assignments, each terminated by a
// semicolon:
//
//	horizon = e2;
//	p = e12 + 2*e01 - 3*e02;
//	q = normalize(p);
//
// Expressions combine numbers, previously assigned names and the
// predefined basis blades (e0, e1, e2, e01, e02, e12, e012) with the
// geometric product (*), wedge (^), inner (|) and regressive (&)
// products, addition, subtraction and scalar division. The prefix
// operators - (negate), ! (dual) and ~ (reverse) and the functions
// normalize, magnitude, sin, cos, asin and acos complete the language.
//
// Parse produces a Program; evaluating it against an Env yields the
// assigned variables in first-assignment order, ready to be turned
// into render objects.
package script
