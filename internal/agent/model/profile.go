package model

// Profile keys accumulated across a conversation thread. Values are display
// strings, e.g. budget is stored as "under $60", never as a number.
const (
	ProfileKeyBudget            = "budget"
	ProfileKeyOccasion          = "occasion"
	ProfileKeyStyle             = "style"
	ProfileKeyDeadline          = "deadline"
	ProfileKeyEngravingLanguage = "engraving_language"
	ProfileKeyEngravingText     = "engraving_text"
)

var knownProfileKeys = map[string]struct{}{
	ProfileKeyBudget:            {},
	ProfileKeyOccasion:          {},
	ProfileKeyStyle:             {},
	ProfileKeyDeadline:          {},
	ProfileKeyEngravingLanguage: {},
	ProfileKeyEngravingText:     {},
}

// KnownProfileKey reports whether k is one of the six supported preference keys.
func KnownProfileKey(k string) bool {
	_, ok := knownProfileKeys[k]
	return ok
}

// Profile is the per-thread map of shopping preferences.
type Profile map[string]string

// Has reports whether the key holds a non-empty value.
func (p Profile) Has(key string) bool {
	return p[key] != ""
}

// SetIfAbsent records value under key unless the key is unknown, the value is
// empty, or the key already holds a non-empty value. Returns true when the
// profile changed. First non-empty wins; set keys are never overwritten.
func (p Profile) SetIfAbsent(key, value string) bool {
	if value == "" || !KnownProfileKey(key) {
		return false
	}
	if p.Has(key) {
		return false
	}
	p[key] = value
	return true
}

// Merge applies an extraction result to the profile under the SetIfAbsent
// rules. Unknown keys and empty values are ignored, so merging is both
// idempotent and monotonic.
func (p Profile) Merge(extracted map[string]string) {
	for k, v := range extracted {
		p.SetIfAbsent(k, v)
	}
}

// Clone returns an independent copy so per-turn mutation never leaks into a
// caller-held snapshot.
func (p Profile) Clone() Profile {
	out := make(Profile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
