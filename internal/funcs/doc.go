// Package funcs builds the fixed builtin function registry exposed to
// expressions. Every function is pure (no side effects beyond reading the
// wall clock for timestamp()), has a checked arity, and is implemented
// either by reusing go-cty's own stdlib function package — the same library
// Terraform's evaluator is built on — or, where a function's exact signature
// has no stdlib equivalent, by a small custom function.New wrapper.
package funcs
