package postgres

import (
	"fmt"
	"strings"

	"github.com/dbschema/dbschema/internal/ir"
)

// generatePolicies enables row-level security on each referenced table
// before its first policy, per spec.md 4.I ("policies after ALTER TABLE
// ENABLE ROW LEVEL SECURITY").
func generatePolicies(b *strings.Builder, policies []ir.Policy) {
	enabled := map[string]bool{}
	for _, p := range policies {
		table := qualified(p.SchemaOrPublic(), p.Table)
		if !enabled[table] {
			b.WriteString(fmt.Sprintf("ALTER TABLE %s ENABLE ROW LEVEL SECURITY;\n", table))
			enabled[table] = true
		}
		b.WriteString(fmt.Sprintf("DO $$ BEGIN\n  CREATE POLICY %s ON %s", quoteIdent(p.Name), table))
		if !p.Permissive {
			b.WriteString(" AS RESTRICTIVE")
		}
		b.WriteString(fmt.Sprintf(" FOR %s", p.Command))
		if len(p.Roles) > 0 {
			b.WriteString(fmt.Sprintf(" TO %s", strings.Join(p.Roles, ", ")))
		}
		if p.Using != "" {
			b.WriteString(fmt.Sprintf(" USING (%s)", p.Using))
		}
		if p.Check != "" {
			b.WriteString(fmt.Sprintf(" WITH CHECK (%s)", p.Check))
		}
		b.WriteString(";\nEXCEPTION WHEN duplicate_object THEN NULL; END $$;\n\n")
	}
}

func generateRoles(b *strings.Builder, roles []ir.Role) {
	for _, r := range roles {
		b.WriteString(fmt.Sprintf("DO $$ BEGIN\n  CREATE ROLE %s", quoteIdent(r.Name)))
		var opts []string
		if r.Login {
			opts = append(opts, "LOGIN")
		} else {
			opts = append(opts, "NOLOGIN")
		}
		if r.Superuser {
			opts = append(opts, "SUPERUSER")
		}
		if r.Password != "" {
			opts = append(opts, fmt.Sprintf("PASSWORD %s", quoteLiteral(r.Password)))
		}
		if len(r.InRoles) > 0 {
			opts = append(opts, fmt.Sprintf("IN ROLE %s", quoteIdentList(r.InRoles)))
		}
		b.WriteString(" " + strings.Join(opts, " "))
		b.WriteString(";\nEXCEPTION WHEN duplicate_object THEN NULL; END $$;\n\n")
	}
}

func generateGrants(b *strings.Builder, grants []ir.Grant) {
	for _, g := range grants {
		b.WriteString(fmt.Sprintf("GRANT %s ON %s TO %s;\n", strings.Join(g.Privileges, ", "), g.On, quoteIdentList(g.To)))
	}
	if len(grants) > 0 {
		b.WriteString("\n")
	}
}

func generatePublications(b *strings.Builder, pubs []ir.Publication) {
	for _, p := range pubs {
		b.WriteString(fmt.Sprintf("DO $$ BEGIN\n  CREATE PUBLICATION %s", quoteIdent(p.Name)))
		if p.AllTables {
			b.WriteString(" FOR ALL TABLES")
		} else if len(p.Tables) > 0 {
			b.WriteString(fmt.Sprintf(" FOR TABLE %s", quoteIdentList(p.Tables)))
		}
		b.WriteString(";\nEXCEPTION WHEN duplicate_object THEN NULL; END $$;\n\n")
	}
}

func generateSubscriptions(b *strings.Builder, subs []ir.Subscription) {
	for _, s := range subs {
		b.WriteString(fmt.Sprintf("DO $$ BEGIN\n  CREATE SUBSCRIPTION %s CONNECTION %s PUBLICATION %s;\n",
			quoteIdent(s.Name), quoteLiteral(s.Connection), strings.Join(s.Publications, ", ")))
		b.WriteString("EXCEPTION WHEN duplicate_object THEN NULL; END $$;\n\n")
	}
}
