package fastac

// mergeMeta folds an incoming JSON object into accumulated block metadata.
// The policy is conservative: it never clobbers an existing scalar.
//
//   - key absent in target: inserted as-is
//   - both values are sequences: concatenated, duplicates allowed
//   - both values are mappings: incoming sub-keys win
//   - anything else (scalar/scalar or type mismatch): incoming value dropped
func mergeMeta(target map[string]any, incoming map[string]any) {
	for key, inVal := range incoming {
		cur, exists := target[key]
		if !exists {
			target[key] = inVal
			continue
		}
		switch curTyped := cur.(type) {
		case []any:
			if inSeq, ok := inVal.([]any); ok {
				target[key] = append(curTyped, inSeq...)
			}
		case map[string]any:
			if inMap, ok := inVal.(map[string]any); ok {
				for k, v := range inMap {
					curTyped[k] = v
				}
			}
		}
	}
}
