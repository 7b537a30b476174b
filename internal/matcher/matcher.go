package matcher

import "strings"

// Match returns, in the order of keys, every key whose lowercase form occurs
// anywhere in the lowercase text. There is no word boundary check, so
// "PythonX" matches "Python". Duplicate keys are reported once.
func Match(text string, keys []string) []string {
	lowered := strings.ToLower(text)
	found := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(key)) {
			seen[key] = struct{}{}
			found = append(found, key)
		}
	}
	return found
}
