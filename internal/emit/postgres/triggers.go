package postgres

import (
	"fmt"
	"strings"

	"github.com/dbschema/dbschema/internal/ir"
)

// generateTriggers guards each CREATE TRIGGER in a DO $$ ... IF NOT EXISTS
// block keyed on pg_trigger, per spec.md 4.I — CREATE TRIGGER itself has no
// IF NOT EXISTS form.
func generateTriggers(b *strings.Builder, triggers []ir.Trigger) {
	for _, t := range triggers {
		table := qualified(t.SchemaOrPublic(), t.Table)
		b.WriteString("DO $$ BEGIN\n")
		b.WriteString(fmt.Sprintf("  IF NOT EXISTS (\n    SELECT 1 FROM pg_trigger\n    WHERE tgname = %s AND tgrelid = %s::regclass\n  ) THEN\n",
			quoteLiteral(t.Name), quoteLiteral(table)))
		b.WriteString(fmt.Sprintf("    CREATE TRIGGER %s\n", quoteIdent(t.Name)))
		b.WriteString(fmt.Sprintf("    %s %s ON %s\n", t.Timing, strings.Join(t.Events, " OR "), table))
		b.WriteString(fmt.Sprintf("    FOR EACH %s\n", t.Level))
		if t.When != "" {
			b.WriteString(fmt.Sprintf("    WHEN (%s)\n", t.When))
		}
		b.WriteString(fmt.Sprintf("    EXECUTE FUNCTION %s();\n", t.Function))
		b.WriteString("  END IF;\nEND $$;\n\n")
	}
}

func generateEventTriggers(b *strings.Builder, triggers []ir.EventTrigger) {
	for _, t := range triggers {
		b.WriteString("DO $$ BEGIN\n")
		b.WriteString(fmt.Sprintf("  IF NOT EXISTS (SELECT 1 FROM pg_event_trigger WHERE evtname = %s) THEN\n", quoteLiteral(t.Name)))
		b.WriteString(fmt.Sprintf("    CREATE EVENT TRIGGER %s ON %s\n", quoteIdent(t.Name), quoteLiteral(t.Event)))
		if len(t.Tags) > 0 {
			tags := make([]string, len(t.Tags))
			for i, tag := range t.Tags {
				tags[i] = quoteLiteral(tag)
			}
			b.WriteString(fmt.Sprintf("    WHEN TAG IN (%s)\n", strings.Join(tags, ", ")))
		}
		b.WriteString(fmt.Sprintf("    EXECUTE FUNCTION %s();\n", t.Function))
		b.WriteString("  END IF;\nEND $$;\n\n")
	}
}

func generateRules(b *strings.Builder, rules []ir.Rule) {
	for _, r := range rules {
		table := qualified(r.SchemaOrPublic(), r.Table)
		b.WriteString(fmt.Sprintf("DO $$ BEGIN\n  CREATE RULE %s AS ON %s TO %s\n", quoteIdent(r.Name), r.Event, table))
		if r.When != "" {
			b.WriteString(fmt.Sprintf("  WHERE %s\n", r.When))
		}
		b.WriteString("  DO ")
		if r.InsteadOf {
			b.WriteString("INSTEAD ")
		}
		if len(r.Actions) == 0 {
			b.WriteString("NOTHING")
		} else if len(r.Actions) == 1 {
			b.WriteString(r.Actions[0])
		} else {
			b.WriteString("(" + strings.Join(r.Actions, "; ") + ")")
		}
		b.WriteString(";\nEXCEPTION WHEN duplicate_object THEN NULL; END $$;\n\n")
	}
}
