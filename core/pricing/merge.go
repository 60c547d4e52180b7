package pricing

// Merge deep-merges override onto base and returns a new tree; neither
// argument is modified.
//
// Objects merge key by key. Null values in override keep the base
// value. Arrays of objects that carry a "key" field merge entry by key,
// with unknown keys appended; other arrays of objects merge by index.
// Scalars and scalar arrays are replaced.
func Merge(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = clone(v)
	}
	for k, v := range override {
		if v == nil {
			continue
		}
		out[k] = mergeValue(out[k], v)
	}
	return out
}

func mergeValue(base, override any) any {
	switch o := override.(type) {
	case map[string]any:
		if b, ok := base.(map[string]any); ok {
			return Merge(b, o)
		}
		return clone(o)
	case []any:
		if b, ok := base.([]any); ok && isObjectList(b) && isObjectList(o) {
			if hasKeys(b) && hasKeys(o) {
				return mergeByKey(b, o)
			}
			return mergeByIndex(b, o)
		}
		return clone(o)
	}
	return override
}

func mergeByIndex(base, override []any) []any {
	n := len(base)
	if len(override) > n {
		n = len(override)
	}
	out := make([]any, n)
	for i := 0; i < n; i++ {
		switch {
		case i >= len(override) || override[i] == nil:
			out[i] = clone(base[i])
		case i >= len(base):
			out[i] = clone(override[i])
		default:
			out[i] = mergeValue(base[i], override[i])
		}
	}
	return out
}

func mergeByKey(base, override []any) []any {
	out := make([]any, 0, len(base)+len(override))
	index := make(map[string]int, len(base))
	for _, item := range base {
		index[itemKey(item)] = len(out)
		out = append(out, clone(item))
	}
	for _, item := range override {
		k := itemKey(item)
		if i, ok := index[k]; ok {
			out[i] = mergeValue(out[i], item)
			continue
		}
		index[k] = len(out)
		out = append(out, clone(item))
	}
	return out
}

func isObjectList(list []any) bool {
	if len(list) == 0 {
		return false
	}
	for _, item := range list {
		if _, ok := item.(map[string]any); !ok {
			return false
		}
	}
	return true
}

func hasKeys(list []any) bool {
	for _, item := range list {
		if itemKey(item) == "" {
			return false
		}
	}
	return true
}

func itemKey(item any) string {
	m, _ := item.(map[string]any)
	k, _ := m["key"].(string)
	return k
}

func clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = clone(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = clone(val)
		}
		return out
	}
	return v
}
