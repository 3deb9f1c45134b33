package lang

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// ExprSet collects expressions and, on demand, the unique variable
// traversals and function names they reference. It backs dependency analysis
// during module and data-source resolution — which module outputs or data
// sources a block touches before the block is ever evaluated.
type ExprSet struct {
	exprs []hcl.Expression
}

// NewExprSet creates an empty set.
func NewExprSet() *ExprSet { return &ExprSet{} }

// Add records zero or more expressions, silently skipping nils.
func (s *ExprSet) Add(exprs ...hcl.Expression) {
	for _, e := range exprs {
		if e != nil {
			s.exprs = append(s.exprs, e)
		}
	}
}

// References returns every unique variable traversal referenced, sorted for
// determinism.
func (s *ExprSet) References() []hcl.Traversal {
	refs, _ := ExtractReferencesAndFunctions(s.exprs...)
	return refs
}

// CalledFunctions returns every unique function name called, sorted for
// determinism.
func (s *ExprSet) CalledFunctions() []string {
	_, fns := ExtractReferencesAndFunctions(s.exprs...)
	return fns
}

// ExtractReferencesAndFunctions walks expr trees to find every variable
// traversal (via the HCL-native Variables() method) and every function call
// (by walking the hclsyntax tree directly, since hcl.Expression has no
// built-in accessor for function calls).
func ExtractReferencesAndFunctions(exprs ...hcl.Expression) ([]hcl.Traversal, []string) {
	traversals := make(map[string]hcl.Traversal)
	functions := make(map[string]struct{})

	for _, expr := range exprs {
		if expr == nil {
			continue
		}
		for _, traversal := range expr.Variables() {
			traversals[TraversalKey(traversal)] = traversal
		}
		if syntaxExpr, ok := expr.(hclsyntax.Expression); ok {
			walkForFunctions(syntaxExpr, functions)
		}
	}

	traversalKeys := make([]string, 0, len(traversals))
	for k := range traversals {
		traversalKeys = append(traversalKeys, k)
	}
	sort.Strings(traversalKeys)

	traversalSlice := make([]hcl.Traversal, 0, len(traversals))
	for _, k := range traversalKeys {
		traversalSlice = append(traversalSlice, traversals[k])
	}

	functionSlice := make([]string, 0, len(functions))
	for f := range functions {
		functionSlice = append(functionSlice, f)
	}
	sort.Strings(functionSlice)

	return traversalSlice, functionSlice
}

func walkForFunctions(expr hclsyntax.Expression, functions map[string]struct{}) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		functions[e.Name] = struct{}{}
		for _, arg := range e.Args {
			walkForFunctions(arg, functions)
		}
	case *hclsyntax.BinaryOpExpr:
		walkForFunctions(e.LHS, functions)
		walkForFunctions(e.RHS, functions)
	case *hclsyntax.ConditionalExpr:
		walkForFunctions(e.Condition, functions)
		walkForFunctions(e.TrueResult, functions)
		walkForFunctions(e.FalseResult, functions)
	case *hclsyntax.UnaryOpExpr:
		walkForFunctions(e.Val, functions)
	case *hclsyntax.TemplateExpr:
		for _, part := range e.Parts {
			walkForFunctions(part, functions)
		}
	case *hclsyntax.TemplateWrapExpr:
		walkForFunctions(e.Wrapped, functions)
	case *hclsyntax.TupleConsExpr:
		for _, item := range e.Exprs {
			walkForFunctions(item, functions)
		}
	case *hclsyntax.ObjectConsExpr:
		for _, item := range e.Items {
			walkForFunctions(item.KeyExpr, functions)
			walkForFunctions(item.ValueExpr, functions)
		}
	case *hclsyntax.ForExpr:
		walkForFunctions(e.CollExpr, functions)
		walkForFunctions(e.KeyExpr, functions)
		walkForFunctions(e.ValExpr, functions)
		walkForFunctions(e.CondExpr, functions)
	case *hclsyntax.IndexExpr:
		walkForFunctions(e.Collection, functions)
		walkForFunctions(e.Key, functions)
	case *hclsyntax.SplatExpr:
		walkForFunctions(e.Source, functions)
		walkForFunctions(e.Each, functions)
	case *hclsyntax.ParenthesesExpr:
		walkForFunctions(e.Expression, functions)
	}
}
