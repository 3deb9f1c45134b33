// Package module implements the module/data-source resolver (spec.md
// 4.E): it loads a root directory and every module it transitively
// reaches, threads variable inputs and outputs, evaluates locals and data
// sources lazily, detects import cycles, and feeds every resource block it
// finds to an internal/expand + internal/ir pass to accumulate the IR.
package module
