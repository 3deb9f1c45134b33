// Package lang holds small, generic helpers for working with the parsed HCL
// source AST that are shared across the module resolver, block expander,
// and IR builder: locating a singleton block by type, producing a stable
// string key for a traversal, and collecting the set of variable references
// and function calls an expression tree makes.
package lang
