package postgres

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dbschema/dbschema/internal/ir"
)

// generateTextSearch covers all four text-search kinds together since
// spec.md groups them as one emission stage ("text-search objects").
func generateTextSearch(b *strings.Builder, doc *ir.IR, opts Options) {
	if opts.allows("text_search_parser") {
		for _, p := range doc.TextSearchParsers {
			b.WriteString(fmt.Sprintf("DO $$ BEGIN\n  CREATE TEXT SEARCH PARSER %s%s;\n",
				qualified(p.SchemaOrPublic(), p.Name), generateOptionsClause(p.Options)))
			b.WriteString("EXCEPTION WHEN duplicate_object THEN NULL; END $$;\n\n")
		}
	}
	if opts.allows("text_search_template") {
		for _, t := range doc.TextSearchTemplates {
			b.WriteString(fmt.Sprintf("DO $$ BEGIN\n  CREATE TEXT SEARCH TEMPLATE %s (\n", qualified(t.SchemaOrPublic(), t.Name)))
			var parts []string
			if t.Init != "" {
				parts = append(parts, fmt.Sprintf("INIT = %s", t.Init))
			}
			parts = append(parts, fmt.Sprintf("LEXIZE = %s", t.Lexize))
			b.WriteString("    " + strings.Join(parts, ",\n    "))
			b.WriteString("\n  );\nEXCEPTION WHEN duplicate_object THEN NULL; END $$;\n\n")
		}
	}
	if opts.allows("text_search_dictionary") {
		for _, d := range doc.TextSearchDictionaries {
			parts := []string{fmt.Sprintf("TEMPLATE = %s", d.Template)}
			parts = append(parts, optionPairs(d.Options)...)
			b.WriteString(fmt.Sprintf("DO $$ BEGIN\n  CREATE TEXT SEARCH DICTIONARY %s (\n    %s\n  );\n",
				qualified(d.SchemaOrPublic(), d.Name), strings.Join(parts, ",\n    ")))
			b.WriteString("EXCEPTION WHEN duplicate_object THEN NULL; END $$;\n\n")
		}
	}
	if opts.allows("text_search_configuration") {
		for _, c := range doc.TextSearchConfigurations {
			name := qualified(c.SchemaOrPublic(), c.Name)
			b.WriteString(fmt.Sprintf("DO $$ BEGIN\n  CREATE TEXT SEARCH CONFIGURATION %s (\n    PARSER = %s\n  );\n",
				name, c.Parser))
			b.WriteString("EXCEPTION WHEN duplicate_object THEN NULL; END $$;\n\n")
			for _, opt := range sortedKeys(c.Options) {
				b.WriteString(fmt.Sprintf("ALTER TEXT SEARCH CONFIGURATION %s ADD MAPPING FOR %s WITH %s;\n", name, opt, c.Options[opt]))
			}
			if len(c.Options) > 0 {
				b.WriteString("\n")
			}
		}
	}
}

// optionPairs renders m as "key = 'value'" pairs in lexical key order, for
// embedding inside a parenthesized option list that already has its own
// enclosing "OPTIONS (...)" or "(...)" syntax.
func optionPairs(m map[string]string) []string {
	keys := sortedKeys(m)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = fmt.Sprintf("%s = %s", k, quoteLiteral(m[k]))
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
