package navigation

import "maps"

// Bundle is a string-keyed bag of values used for arguments and saved state.
type Bundle map[string]any

// Clone returns a shallow copy. Nested bundles are copied as well so a saved
// snapshot cannot be changed through the entry it came from.
func (b Bundle) Clone() Bundle {
	if b == nil {
		return nil
	}
	out := make(Bundle, len(b))
	for k, v := range b {
		if nested, ok := v.(Bundle); ok {
			out[k] = nested.Clone()
			continue
		}
		out[k] = v
	}
	return out
}

// Merge copies every key of other into b, overwriting.
func (b Bundle) Merge(other Bundle) {
	maps.Copy(b, other)
}

// GetString returns the value under key if it is a string.
func (b Bundle) GetString(key string) (string, bool) {
	s, ok := b[key].(string)
	return s, ok
}

// GetInt returns the value under key if it is an int.
func (b Bundle) GetInt(key string) (int, bool) {
	i, ok := b[key].(int)
	return i, ok
}

// GetBundle returns the nested bundle under key.
func (b Bundle) GetBundle(key string) (Bundle, bool) {
	n, ok := b[key].(Bundle)
	return n, ok
}
