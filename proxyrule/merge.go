package proxyrule

// mergeFields merges src into a shallow copy of dst using Proxy.Apply's merge
// semantics: plain maps merge recursively, slices concatenate (src appended
// after dst, preserving insertion order across rules), and every other type
// is last-write-wins. dst is never mutated in place.
func mergeFields(dst map[string]interface{}, src map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}

	for k, sv := range src {
		dv, exists := out[k]
		if !exists {
			out[k] = sv
			continue
		}
		out[k] = mergeValue(dv, sv)
	}

	return out
}

func mergeValue(dv, sv interface{}) interface{} {
	if dm, ok := dv.(map[string]interface{}); ok {
		if sm, ok := sv.(map[string]interface{}); ok {
			return mergeFields(dm, sm)
		}
		return sv
	}

	if ds, ok := dv.([]interface{}); ok {
		if ss, ok := sv.([]interface{}); ok {
			merged := make([]interface{}, 0, len(ds)+len(ss))
			merged = append(merged, ds...)
			merged = append(merged, ss...)
			return merged
		}
		return sv
	}

	// scalar or incompatible types: last write wins.
	return sv
}
