package postgres

import (
	"fmt"
	"strings"

	"github.com/dbschema/dbschema/internal/ir"
)

func generateArgList(args []ir.FunctionArg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a.Name != "" {
			parts[i] = fmt.Sprintf("%s %s", quoteIdent(a.Name), a.Type)
		} else {
			parts[i] = a.Type
		}
	}
	return strings.Join(parts, ", ")
}

func generateFunctions(b *strings.Builder, functions []ir.Function) {
	for _, f := range functions {
		name := qualified(f.SchemaOrPublic(), f.Name)
		b.WriteString("CREATE")
		if f.Replace {
			b.WriteString(" OR REPLACE")
		}
		b.WriteString(fmt.Sprintf(" FUNCTION %s(%s)\n", name, generateArgList(f.Args)))
		b.WriteString(fmt.Sprintf("RETURNS %s\n", f.Returns))
		b.WriteString(fmt.Sprintf("LANGUAGE %s\n", f.Language))
		if f.Volatility != "" {
			b.WriteString(f.Volatility + "\n")
		}
		if f.Security != "" {
			b.WriteString(fmt.Sprintf("SECURITY %s\n", f.Security))
		}
		b.WriteString(fmt.Sprintf("AS $function$\n%s\n$function$;\n\n", f.Body))
	}
}

func generateProcedures(b *strings.Builder, procedures []ir.Procedure) {
	for _, p := range procedures {
		name := qualified(p.SchemaOrPublic(), p.Name)
		b.WriteString("CREATE")
		if p.Replace {
			b.WriteString(" OR REPLACE")
		}
		b.WriteString(fmt.Sprintf(" PROCEDURE %s(%s)\n", name, generateArgList(p.Args)))
		b.WriteString(fmt.Sprintf("LANGUAGE %s\n", p.Language))
		b.WriteString(fmt.Sprintf("AS $procedure$\n%s\n$procedure$;\n\n", p.Body))
	}
}

func generateAggregates(b *strings.Builder, aggregates []ir.Aggregate) {
	for _, a := range aggregates {
		name := qualified(a.SchemaOrPublic(), a.Name)
		b.WriteString(fmt.Sprintf("DO $$ BEGIN\n  CREATE AGGREGATE %s(%s) (\n", name, strings.Join(a.InputTypes, ", ")))
		var opts []string
		opts = append(opts, fmt.Sprintf("SFUNC = %s", a.StateFunc))
		if a.InitialCondition != "" {
			opts = append(opts, fmt.Sprintf("INITCOND = %s", quoteLiteral(a.InitialCondition)))
		}
		if a.FinalFunc != "" {
			opts = append(opts, fmt.Sprintf("FINALFUNC = %s", a.FinalFunc))
		}
		b.WriteString("    " + strings.Join(opts, ",\n    "))
		b.WriteString("\n  );\nEXCEPTION WHEN duplicate_function THEN NULL; END $$;\n\n")
	}
}

func generateOperators(b *strings.Builder, operators []ir.Operator) {
	for _, o := range operators {
		// Operator symbols (+, @>, ...) are not SQL identifiers, so unlike
		// every other kind this name is emitted unquoted.
		name := quoteIdent(o.SchemaOrPublic()) + "." + o.Symbol
		b.WriteString(fmt.Sprintf("DO $$ BEGIN\n  CREATE OPERATOR %s (\n", name))
		var opts []string
		opts = append(opts, fmt.Sprintf("PROCEDURE = %s", o.Function))
		if o.LeftType != "" {
			opts = append(opts, fmt.Sprintf("LEFTARG = %s", o.LeftType))
		}
		if o.RightType != "" {
			opts = append(opts, fmt.Sprintf("RIGHTARG = %s", o.RightType))
		}
		if o.Commutator != "" {
			opts = append(opts, fmt.Sprintf("COMMUTATOR = %s", o.Commutator))
		}
		if o.Negator != "" {
			opts = append(opts, fmt.Sprintf("NEGATOR = %s", o.Negator))
		}
		if o.Parallel != "" {
			opts = append(opts, fmt.Sprintf("PARALLEL = %s", o.Parallel))
		}
		b.WriteString("    " + strings.Join(opts, ",\n    "))
		b.WriteString("\n  );\nEXCEPTION WHEN duplicate_function THEN NULL; END $$;\n\n")
	}
}
