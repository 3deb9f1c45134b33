package ir

import "strings"

// Normalize upper-cases the SQL keyword attributes spec.md's original_source
// normalization pass canonicalizes before validation and emission, so that
// `timing = "before"` and `timing = "BEFORE"` compare equal everywhere
// downstream. Applied once, right after Freeze, before Validate.
func Normalize(ir *IR) {
	for i := range ir.Triggers {
		t := &ir.Triggers[i]
		t.Timing = strings.ToUpper(t.Timing)
		t.Level = strings.ToUpper(t.Level)
		for j, e := range t.Events {
			t.Events[j] = strings.ToUpper(e)
		}
	}
	for i := range ir.Policies {
		ir.Policies[i].Command = strings.ToUpper(ir.Policies[i].Command)
	}
	for i := range ir.Operators {
		ir.Operators[i].Parallel = strings.ToUpper(ir.Operators[i].Parallel)
	}
	for i := range ir.Tables {
		for j := range ir.Tables[i].ForeignKeys {
			fk := &ir.Tables[i].ForeignKeys[j]
			fk.OnDelete = strings.ToUpper(fk.OnDelete)
			fk.OnUpdate = strings.ToUpper(fk.OnUpdate)
		}
	}
	for i := range ir.Rules {
		ir.Rules[i].Event = strings.ToUpper(ir.Rules[i].Event)
	}
	for i := range ir.EventTriggers {
		ir.EventTriggers[i].Event = strings.ToUpper(ir.EventTriggers[i].Event)
	}
}
