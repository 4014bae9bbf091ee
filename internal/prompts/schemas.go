package prompts

// ---------- shared fragments ----------

// Schema builders use the provider's OpenAPI-subset vocabulary
// (uppercase type names).

func StringSchema() map[string]any {
	return map[string]any{"type": "STRING"}
}

func IntegerSchema() map[string]any {
	return map[string]any{"type": "INTEGER"}
}

func StringArraySchema() map[string]any {
	return map[string]any{
		"type":  "ARRAY",
		"items": StringSchema(),
	}
}

func EnumSchema(values ...string) map[string]any {
	return map[string]any{
		"type": "STRING",
		"enum": values,
	}
}

// EvaluationSchema is the formal response schema for the
// explanation-grading call, enforced by the provider so the answer comes
// back as constrained JSON directly.
func EvaluationSchema() map[string]any {
	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"score":         IntegerSchema(),
			"feedback":      StringSchema(),
			"missingPoints": StringArraySchema(),
			"correction":    StringSchema(),
		},
		"required": []string{"score", "feedback", "missingPoints", "correction"},
	}
}
