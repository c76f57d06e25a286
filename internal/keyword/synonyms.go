package keyword

import "strings"

// synonymMap widens the lexical net of the full-text channel. Map keys are
// canonical keywords; values are the variant sets injected alongside them.
var synonymMap = map[string][]string{
	"심카드": {"유심", "심카드", "USIM", "SIM"},
	"유심":  {"유심", "심카드", "USIM", "SIM"},
	"사건":  {"사건", "사태", "문제"},
	"해킹":  {"해킹", "침입", "탈취"},
}

// triggerTerms are checked as substrings of the original raw query when
// extraction yielded too few keywords. Each hit injects its canonical
// keywords directly, as a recall safety net for short queries.
var triggerTerms = []struct {
	Substrings []string
	Inject     []string
}{
	{[]string{"심카드", "유심"}, []string{"유심", "심카드"}},
	{[]string{"유출"}, []string{"유출"}},
	{[]string{"사건", "사태"}, []string{"사건", "사태"}},
	{[]string{"해킹"}, []string{"해킹", "침입"}},
}

const minKeywordsBeforeInjection = 2

// ExpandKeywords applies the short-query trigger injection and the synonym
// map to the extracted keyword list. The result is deduplicated and keeps
// first-occurrence order.
func ExpandKeywords(keywords []string, originalQuery string) []string {
	working := keywords

	if len(working) < minKeywordsBeforeInjection {
		for _, trigger := range triggerTerms {
			for _, sub := range trigger.Substrings {
				if strings.Contains(originalQuery, sub) {
					working = append(working, trigger.Inject...)
					break
				}
			}
		}
	}

	var expanded []string
	for _, kw := range working {
		if variants, ok := synonymMap[kw]; ok {
			expanded = append(expanded, variants...)
		} else {
			expanded = append(expanded, kw)
		}
	}

	seen := make(map[string]struct{}, len(expanded))
	var unique []string
	for _, kw := range expanded {
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		unique = append(unique, kw)
	}

	return unique
}
