package utils

// PruneNils walks a decoded JSON tree and removes every map key whose value
// is nil, recursing into nested maps and slices. The outbound wire contract
// forbids null-valued keys. Empty strings, zero numbers, and empty
// collections are kept; only explicit nulls are stripped.
func PruneNils(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		for key, nested := range v {
			if nested == nil {
				delete(v, key)
				continue
			}
			v[key] = PruneNils(nested)
		}
		return v
	case []interface{}:
		for i, nested := range v {
			if nested == nil {
				continue
			}
			v[i] = PruneNils(nested)
		}
		return v
	default:
		return v
	}
}
