package store

// LegacyExpenseName names the single expense line a pre-list document's
// numeric otherExpenses becomes.
const LegacyExpenseName = "Legacy Other Expenses"

// emptyTree is the default document in its generic JSON shape. A fresh
// value is returned on each call: merging loaded data against a default
// whose arrays already hold records would duplicate them.
func emptyTree() map[string]any {
	return map[string]any{
		"inventory":     []any{},
		"purchases":     []any{},
		"sales":         []any{},
		"rent":          float64(0),
		"otherExpenses": []any{},
	}
}

// DeepMerge merges source into a copy of target. Objects merge key by key,
// arrays concatenate target then source, and any other value from source
// replaces the target value. Keys only present in target survive.
func DeepMerge(target, source map[string]any) map[string]any {
	out := make(map[string]any, len(target)+len(source))
	for k, v := range target {
		out[k] = v
	}

	for k, sv := range source {
		tv, exists := target[k]
		if !exists {
			out[k] = sv
			continue
		}

		switch t := tv.(type) {
		case map[string]any:
			if s, ok := sv.(map[string]any); ok {
				out[k] = DeepMerge(t, s)
				continue
			}
		case []any:
			if s, ok := sv.([]any); ok {
				merged := make([]any, 0, len(t)+len(s))
				merged = append(merged, t...)
				merged = append(merged, s...)
				out[k] = merged
				continue
			}
		}
		out[k] = sv
	}
	return out
}

// NeedsMigration reports whether raw still carries otherExpenses as a bare
// number, or as a string where a hand edit quoted the number.
func NeedsMigration(raw map[string]any) bool {
	_, legacy := legacyExpenses(raw)
	return legacy
}

func legacyExpenses(raw map[string]any) (float64, bool) {
	switch v := raw["otherExpenses"].(type) {
	case float64, string:
		return toNumber(v), true
	default:
		return 0, false
	}
}

// Migrate converts a scalar otherExpenses into an expense list. Strings are
// coerced like any other stored number. A document
// already in list shape is returned unchanged, so applying it twice equals
// applying it once.
func Migrate(raw map[string]any) map[string]any {
	amount, legacy := legacyExpenses(raw)
	if !legacy {
		return raw
	}

	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	if amount <= 0 {
		out["otherExpenses"] = []any{}
		return out
	}
	out["otherExpenses"] = []any{
		map[string]any{"name": LegacyExpenseName, "amount": amount},
	}
	return out
}
