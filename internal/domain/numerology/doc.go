// Package numerology implements the calculation engine behind the numerology
// reports: birth date parsing, digit reduction, the personal numbers, the
// Pythagorean square ("energy grid"), planetary recommendations and pairwise
// compatibility.
//
// Every function in this package is a pure transformation from input value to
// output value. Nothing is cached between calls and nothing is shared except the
// read-only lookup tables decoded from the embedded data file at init, so the
// package is safe for concurrent use without locking.
//
// Callers that only need part of a report can use the individual calculators
// (BirthDate.LifePath, Number, BuildEnergyGrid, ...). FullReport composes all of
// them into the record exposed over the API.
package numerology
