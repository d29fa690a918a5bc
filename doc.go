/*
Package monty implements the core runtime of a sandboxed interpreter for a
Python-subset language: a reference-counted value heap with lazy hash
caching, the closed set of operations every heap-resident type must satisfy,
an exception model with chained stack frames, a pluggable print sink and
resource tracker, and the frame executor that drives a prepared program to
completion.

Parsing and compiling source text into a prepared program is outside this
package; callers obtain a Program value (see Program and MontyRun) however
their embedding chooses to produce one, then drive it with Run.
*/
package monty
