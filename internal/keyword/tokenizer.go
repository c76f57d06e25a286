package keyword

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Tokenizer extracts core keyword tokens from mixed Korean/English text.
// Korean runs go through a rule-based morphological pass (particle and
// ending stripping), Latin runs through a lowercasing stopword filter,
// digit runs are kept verbatim.
type Tokenizer struct {
	koreanRegex      *regexp.Regexp
	latinRegex       *regexp.Regexp
	digitRegex       *regexp.Regexp
	whitespaceRegex  *regexp.Regexp
	koreanStopwords  map[string]struct{}
	englishStopwords map[string]struct{}
}

var koreanStopwordList = []string{
	"이", "그", "저", "것", "의", "가", "을", "를", "에", "와", "과", "도", "는", "은", "으로", "로",
	"에서", "부터", "까지", "이다", "있다", "없다", "하다", "되다", "같다", "다른", "많다", "적다",
	"좋다", "나쁘다", "크다", "작다", "높다", "낮다", "그리고", "또는", "하지만", "그러나", "그래서",
	"따라서", "즉", "또한", "때문에", "위해", "아니다", "수", "개", "명", "번", "등",
	"및", "또", "더", "가장", "매우", "정말", "아주", "너무", "조금", "약간", "거의", "완전히",
	"전혀", "항상", "때로는", "가끔", "자주", "드물게", "언제나", "결코", "절대", "모든", "어떤",
	"각각", "서로", "함께", "혼자", "다시", "새로", "이미", "아직", "계속", "다음", "이전", "현재",
	"과거", "미래", "여기", "거기", "어디", "언제", "어떻게", "왜", "무엇", "누구", "얼마나",
}

var englishStopwordList = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from", "has", "he", "in", "is", "it",
	"its", "of", "on", "that", "the", "to", "was", "will", "with", "this", "but", "they",
	"have", "had", "what", "said", "each", "which", "she", "do", "how", "their", "if", "up", "out",
	"many", "then", "them", "these", "so", "some", "her", "would", "make", "like", "into", "him",
	"time", "two", "more", "very", "when", "come", "may", "only", "think", "now", "work",
	"life", "also", "way", "after", "back", "other", "well", "get", "through", "new", "year", "could",
}

// Particles are stripped from the tail of a Korean word, longest first.
var koreanParticles = []string{
	"에서는", "에게서", "으로써", "으로서", "에서", "에게", "으로", "부터", "까지", "처럼", "보다",
	"조차", "마다", "밖에", "이나", "하고", "이라", "한테",
	"은", "는", "이", "가", "을", "를", "과", "와", "의", "도", "만", "에", "로", "나", "랑", "께",
}

// Verbal endings are stripped to approximate stemmed dictionary forms,
// longest first.
var koreanEndings = []string{
	"하겠습니다", "하였습니다", "했습니다", "하십니까", "합니까", "합니다", "하세요", "하나요",
	"했어요", "하는데", "하려고", "하면서", "인가요", "입니까", "입니다", "이에요",
	"습니까", "습니다", "할까요", "하는", "해서", "하면", "하기", "하게", "했다", "한다",
	"네요", "나요", "세요", "군요", "지요", "어요", "아요", "에요", "예요", "되나", "죠", "요",
}

// NewTokenizer builds a tokenizer with the fixed bilingual stopword sets.
func NewTokenizer() *Tokenizer {
	t := &Tokenizer{
		koreanRegex:      regexp.MustCompile(`[가-힣]+`),
		latinRegex:       regexp.MustCompile(`[a-zA-Z]+`),
		digitRegex:       regexp.MustCompile(`[0-9]+`),
		whitespaceRegex:  regexp.MustCompile(`\s+`),
		koreanStopwords:  make(map[string]struct{}, len(koreanStopwordList)),
		englishStopwords: make(map[string]struct{}, len(englishStopwordList)),
	}
	for _, w := range koreanStopwordList {
		t.koreanStopwords[w] = struct{}{}
	}
	for _, w := range englishStopwordList {
		t.englishStopwords[w] = struct{}{}
	}
	return t
}

// Normalize folds full-width characters to half-width and collapses
// whitespace runs.
func (t *Tokenizer) Normalize(text string) string {
	folded := width.Fold.String(text)
	folded = t.whitespaceRegex.ReplaceAllString(folded, " ")
	return strings.TrimSpace(folded)
}

// CoreTokens returns the pre-deduplication token stream for text: Korean
// morphological tokens, filtered English tokens, and verbatim digit runs.
// It never fails; an analysis pass that yields nothing for a script run
// degrades to whitespace splitting of that run alone.
func (t *Tokenizer) CoreTokens(text string) []string {
	normalized := t.Normalize(text)

	var tokens []string

	koreanRuns := t.koreanRegex.FindAllString(normalized, -1)
	if len(koreanRuns) > 0 {
		tokens = append(tokens, t.koreanMorphologicalAnalysis(strings.Join(koreanRuns, " "))...)
	}

	latinRuns := t.latinRegex.FindAllString(normalized, -1)
	if len(latinRuns) > 0 {
		tokens = append(tokens, t.englishAnalysis(strings.Join(latinRuns, " "))...)
	}

	tokens = append(tokens, t.digitRegex.FindAllString(normalized, -1)...)

	return tokens
}

// ExtractCoreKeywords returns the deduplicated keyword set for text,
// preserving first-occurrence order.
func (t *Tokenizer) ExtractCoreKeywords(text string) []string {
	seen := make(map[string]struct{})
	var unique []string
	for _, token := range t.CoreTokens(text) {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		unique = append(unique, token)
	}
	return unique
}

// koreanMorphologicalAnalysis keeps content words from Korean text:
// particles and verbal endings are stripped, stopwords and single-syllable
// remainders are dropped.
func (t *Tokenizer) koreanMorphologicalAnalysis(text string) []string {
	words := strings.Fields(text)
	var keywords []string

	for _, word := range words {
		stem := t.stripKoreanAffixes(word)
		if utf8.RuneCountInString(stem) < 2 {
			continue
		}
		if _, stop := t.koreanStopwords[stem]; stop {
			continue
		}
		keywords = append(keywords, stem)
	}

	if keywords == nil {
		// Degraded path: keep the raw words rather than losing the run.
		for _, word := range words {
			if utf8.RuneCountInString(word) >= 2 {
				if _, stop := t.koreanStopwords[word]; !stop {
					keywords = append(keywords, word)
				}
			}
		}
	}

	return keywords
}

func (t *Tokenizer) stripKoreanAffixes(word string) string {
	stem := word

	for _, ending := range koreanEndings {
		if strings.HasSuffix(stem, ending) && utf8.RuneCountInString(stem) > utf8.RuneCountInString(ending) {
			stem = strings.TrimSuffix(stem, ending)
			break
		}
	}

	for _, particle := range koreanParticles {
		if strings.HasSuffix(stem, particle) && utf8.RuneCountInString(stem) > utf8.RuneCountInString(particle)+1 {
			stem = strings.TrimSuffix(stem, particle)
			break
		}
	}

	return stem
}

// englishAnalysis lowercases Latin tokens and applies the stopword and
// minimum-length filters.
func (t *Tokenizer) englishAnalysis(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	var keywords []string

	for _, word := range words {
		if len(word) < 2 {
			continue
		}
		if _, stop := t.englishStopwords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
	}

	return keywords
}
