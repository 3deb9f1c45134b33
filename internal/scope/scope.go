package scope

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Scope is an immutable binding frame. It wraps the *hcl.EvalContext that
// expression evaluation actually consumes.
type Scope struct {
	ctx *hcl.EvalContext
}

// Root builds an empty scope carrying the given builtin function registry
// and nothing else bound. Used for the top-level config and for each module
// body, since module internals start with a fresh var./local./data./module.
// frame — parent state is never visible inside a module.
func Root(functions map[string]function.Function) *Scope {
	return &Scope{ctx: &hcl.EvalContext{
		Variables: map[string]cty.Value{},
		Functions: functions,
	}}
}

// EvalContext returns the underlying context for expr.Value(ctx) calls.
func (s *Scope) EvalContext() *hcl.EvalContext {
	return s.ctx
}

func (s *Scope) namespace(name string) map[string]cty.Value {
	v, ok := s.ctx.Variables[name]
	if !ok || v.IsNull() || !v.Type().IsObjectType() {
		return map[string]cty.Value{}
	}
	return v.AsValueMap()
}

// withNamespace returns a new Scope with the top-level namespace (var, local,
// data, module, each, count) replaced wholesale; all other namespaces are
// carried over unchanged.
func (s *Scope) withNamespace(name string, value cty.Value) *Scope {
	vars := make(map[string]cty.Value, len(s.ctx.Variables)+1)
	for k, v := range s.ctx.Variables {
		vars[k] = v
	}
	vars[name] = value
	return &Scope{ctx: &hcl.EvalContext{Variables: vars, Functions: s.ctx.Functions}}
}

func objectOf(m map[string]cty.Value) cty.Value {
	if len(m) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(m)
}

// WithVar binds var.<name> = value, leaving every other previously-bound
// variable in place.
func (s *Scope) WithVar(name string, value cty.Value) *Scope {
	vars := s.namespace("var")
	vars[name] = value
	return s.withNamespace("var", objectOf(vars))
}

// WithLocal binds local.<name> = value.
func (s *Scope) WithLocal(name string, value cty.Value) *Scope {
	locals := s.namespace("local")
	locals[name] = value
	return s.withNamespace("local", objectOf(locals))
}

// WithData binds data.<dsType>.<name> = value.
func (s *Scope) WithData(dsType, name string, value cty.Value) *Scope {
	data := s.namespace("data")
	typed := map[string]cty.Value{}
	if existing, ok := data[dsType]; ok && existing.Type().IsObjectType() {
		typed = existing.AsValueMap()
	}
	typed[name] = value
	data[dsType] = objectOf(typed)
	return s.withNamespace("data", objectOf(data))
}

// WithModuleOutputs binds module.<name>.<output> for every entry in outputs,
// made visible to the enclosing scope immediately after the named module
// finishes evaluating.
func (s *Scope) WithModuleOutputs(name string, outputs map[string]cty.Value) *Scope {
	modules := s.namespace("module")
	modules[name] = objectOf(outputs)
	return s.withNamespace("module", objectOf(modules))
}

// WithEach binds each.key and each.value for one for_each iteration.
func (s *Scope) WithEach(key, value cty.Value) *Scope {
	return s.withNamespace("each", cty.ObjectVal(map[string]cty.Value{
		"key":   key,
		"value": value,
	}))
}

// WithCount binds count.index for one count iteration.
func (s *Scope) WithCount(index int) *Scope {
	return s.withNamespace("count", cty.ObjectVal(map[string]cty.Value{
		"index": cty.NumberIntVal(int64(index)),
	}))
}

// Var looks up var.<name>, reporting whether it is bound.
func (s *Scope) Var(name string) (cty.Value, bool) {
	v, ok := s.namespace("var")[name]
	return v, ok
}

// Local looks up local.<name>, reporting whether it is bound.
func (s *Scope) Local(name string) (cty.Value, bool) {
	v, ok := s.namespace("local")[name]
	return v, ok
}
