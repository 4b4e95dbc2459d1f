package domain

// RawRecord is the as-fetched, source-native payload for one place.
// Adapters treat it as immutable after the one-time property
// normalization done at construction.
type RawRecord map[string]interface{}

// Kind values declared by records of the geocoding index.
const (
	RawKindAdmin   = "admin"
	RawKindStreet  = "street"
	RawKindAddress = "addr"
	RawKindPOI     = "poi"
	RawKindTaPOI   = "poi_tripadvisor"
)

func (r RawRecord) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

func (r RawRecord) Map(key string) map[string]interface{} {
	if v, ok := r[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}

func (r RawRecord) Slice(key string) []interface{} {
	if v, ok := r[key].([]interface{}); ok {
		return v
	}
	return nil
}

func (r RawRecord) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// StringsAt returns a string list whether the raw value is a single
// string or a list of strings.
func (r RawRecord) StringsAt(key string) []string {
	switch v := r[key].(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return v
	}
	return nil
}
