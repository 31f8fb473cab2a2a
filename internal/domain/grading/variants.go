package grading

import "strings"

// nicknames lists accepted alternative answers keyed by the canonical real
// name. Keys are stored as written; some of them ("t'challa", "logan") can
// never equal a normalized answer.
var nicknames = map[string][]string{
	"peter parker":     {"peter", "parker", "spiderman", "spider man"},
	"tony stark":       {"tony", "stark", "ironman", "iron man"},
	"steve rogers":     {"steve", "rogers", "captain america", "cap"},
	"natasha romanoff": {"natasha", "romanoff", "black widow", "widow"},
	"thor odinson":     {"thor", "odinson"},
	"bruce banner":     {"bruce", "banner", "hulk"},
	"t'challa":         {"tchalla", "black panther", "panther"},
	"stephen strange":  {"stephen", "strange", "doctor strange", "dr strange"},
	"logan":            {"wolverine", "james howlett"},
	"wade wilson":      {"wade", "wilson", "deadpool"},
	"ororo munroe":     {"ororo", "munroe", "storm"},
	"jean grey":        {"jean", "grey", "phoenix"},
	"scott summers":    {"scott", "summers", "cyclops"},
	"erik lehnsherr":   {"erik", "lehnsherr", "magneto"},
	"eddie brock":      {"eddie", "brock", "venom"},
	"scott lang":       {"scott", "lang", "ant man", "antman"},
	"carol danvers":    {"carol", "danvers", "captain marvel"},
	"wanda maximoff":   {"wanda", "maximoff", "scarlet witch"},
	"clint barton":     {"clint", "barton", "hawkeye"},
}

// matchesNickname reports whether a normalized guess matches any nickname of
// the normalized canonical answer, in either containment direction.
func matchesNickname(user, correct string) bool {
	variants, ok := nicknames[correct]
	if !ok {
		return false
	}
	for _, v := range variants {
		if strings.Contains(user, v) || strings.Contains(v, user) {
			return true
		}
	}
	return false
}

// Nicknames returns the alternative answers accepted for a canonical answer
// when the nickname fallback is enabled.
func Nicknames(canonical string) []string {
	variants := nicknames[Normalize(canonical)]
	out := make([]string, len(variants))
	copy(out, variants)
	return out
}
