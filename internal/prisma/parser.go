package prisma

import (
	"fmt"
	"strings"
)

// Parse reads the subset of Prisma schema syntax this module understands:
// model and enum blocks. Every other top-level block kind (datasource,
// generator, type alias, view, composite type) is recognized by its header
// and skipped whole, brace-counted, so a full schema file parses without
// error even though only models and enums are captured.
func Parse(src string) (*Schema, error) {
	lines := stripComments(src)
	schema := &Schema{}

	for i := 0; i < len(lines); {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}

		header := strings.Fields(line)
		switch {
		case len(header) >= 2 && header[0] == "model" && strings.HasSuffix(line, "{"):
			model, next, err := parseModel(lines, i)
			if err != nil {
				return nil, err
			}
			schema.Models = append(schema.Models, model)
			i = next

		case len(header) >= 2 && header[0] == "enum" && strings.HasSuffix(line, "{"):
			enm, next, err := parseEnum(lines, i)
			if err != nil {
				return nil, err
			}
			schema.Enums = append(schema.Enums, enm)
			i = next

		case strings.HasSuffix(line, "{"):
			// datasource / generator / type / view / composite-type blocks:
			// not exposed, skip to the matching close brace.
			i = skipBlock(lines, i)

		default:
			i++
		}
	}

	return schema, nil
}

func stripComments(src string) []string {
	raw := strings.Split(src, "\n")
	out := make([]string, len(raw))
	for i, line := range raw {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		out[i] = line
	}
	return out
}

func skipBlock(lines []string, start int) int {
	depth := 0
	i := start
	for ; i < len(lines); i++ {
		depth += strings.Count(lines[i], "{")
		depth -= strings.Count(lines[i], "}")
		if i > start && depth <= 0 {
			return i + 1
		}
	}
	return i
}

func parseModel(lines []string, start int) (Model, int, error) {
	header := strings.Fields(strings.TrimSpace(lines[start]))
	if len(header) < 2 {
		return Model{}, 0, fmt.Errorf("malformed model header: %q", lines[start])
	}
	model := Model{Name: header[1]}

	i := start + 1
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if line == "}" {
			return model, i + 1, nil
		}
		if strings.HasPrefix(line, "@@") {
			model.Attributes = append(model.Attributes, line)
			continue
		}

		field, err := parseField(line)
		if err != nil {
			return Model{}, 0, fmt.Errorf("model %s: %w", model.Name, err)
		}
		model.Fields = append(model.Fields, field)
	}
	return Model{}, 0, fmt.Errorf("model %s: missing closing brace", model.Name)
}

func parseEnum(lines []string, start int) (Enum, int, error) {
	header := strings.Fields(strings.TrimSpace(lines[start]))
	if len(header) < 2 {
		return Enum{}, 0, fmt.Errorf("malformed enum header: %q", lines[start])
	}
	enm := Enum{Name: header[1]}

	i := start + 1
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if line == "}" {
			return enm, i + 1, nil
		}
		if strings.HasPrefix(line, "@@") {
			enm.Attributes = append(enm.Attributes, line)
			continue
		}
		tokens := splitRespectingParens(line)
		if len(tokens) > 0 {
			enm.Values = append(enm.Values, tokens[0])
		}
	}
	return Enum{}, 0, fmt.Errorf("enum %s: missing closing brace", enm.Name)
}

func parseField(line string) (Field, error) {
	tokens := splitRespectingParens(line)
	if len(tokens) < 2 {
		return Field{}, fmt.Errorf("malformed field declaration: %q", line)
	}

	field := Field{Name: tokens[0]}
	typeToken := tokens[1]
	if strings.HasSuffix(typeToken, "[]") {
		field.List = true
		typeToken = strings.TrimSuffix(typeToken, "[]")
	}
	if strings.HasSuffix(typeToken, "?") {
		field.Optional = true
		typeToken = strings.TrimSuffix(typeToken, "?")
	}
	field.Type = typeToken
	field.Attributes = append(field.Attributes, tokens[2:]...)
	return field, nil
}

// splitRespectingParens tokenizes on whitespace, but never inside ()/[]
// groups — attributes like @relation(fields: [authorId], references: [id])
// contain spaces that must stay part of one token.
func splitRespectingParens(line string) []string {
	var tokens []string
	var cur strings.Builder
	depth := 0

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, r := range line {
		switch r {
		case '(', '[':
			depth++
			cur.WriteRune(r)
		case ')', ']':
			if depth > 0 {
				depth--
			}
			cur.WriteRune(r)
		case ' ', '\t':
			if depth > 0 {
				cur.WriteRune(r)
			} else {
				flush()
			}
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}
