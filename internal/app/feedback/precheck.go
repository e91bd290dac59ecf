package feedback

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"

	apperrors "interview-ai/internal/app/errors"
)

const (
	maxRuneRun       = 5
	maxWordRun       = 3
	minWordsForRatio = 4
	minUniqueRatio   = 0.3
)

// Filler words that do not count towards the meaningful token total.
var fillerWords = map[string]struct{}{
	"음":  {}, "어": {}, "아": {}, "그": {}, "저": {}, "그냥": {}, "뭐": {},
	"um": {}, "uh": {}, "er": {}, "hmm": {},
}

// Particles that carry no content when attached to a non-Hangul stem ("TCP는").
var particles = map[string]struct{}{
	"은":  {}, "는": {}, "이": {}, "가": {}, "을": {}, "를": {}, "의": {}, "에": {},
	"와":  {}, "과": {}, "로": {}, "으로": {}, "도": {}, "만": {}, "에서": {}, "에게": {},
	"까지": {}, "부터": {}, "보다": {}, "처럼": {}, "이나": {}, "나": {}, "랑": {}, "이랑": {},
}

// Copula and 하다/되다 endings. A Hangul run ending in one of these holds a
// predicate token besides its stem ("프로토콜입니다", "구현되어").
var predicateSuffixes = []string{
	"이었습니다", "였습니다", "했습니다", "되었습니다", "됐습니다",
	"입니다", "합니다", "됩니다", "이었다", "되었다",
	"이다", "이며", "이고", "이라", "였다",
	"한다", "했다", "하고", "해서", "하여", "하는", "하면", "하기",
	"된다", "됐다", "되어", "되는", "되고", "되면",
}

// Checker runs the local checks that need no LLM call.
type Checker struct {
	MaxAnswerChars  int
	MinAnswerTokens int
}

// Validate rejects blank or oversized input with a coded error.
func (c Checker) Validate(question, answer string) error {
	if strings.TrimSpace(question) == "" {
		return apperrors.NewCoded(apperrors.CodeEmptyQuestion, "question is empty")
	}
	if strings.TrimSpace(answer) == "" {
		return apperrors.NewCoded(apperrors.CodeEmptyAnswer, "answer is empty")
	}
	if c.MaxAnswerChars > 0 && utf8.RuneCountInString(answer) > c.MaxAnswerChars {
		return apperrors.NewCoded(apperrors.CodeAnswerTooLong, "answer exceeds the length limit")
	}
	return nil
}

// IsInsufficient reports whether answer is too short or too repetitive to score.
func (c Checker) IsInsufficient(answer string) bool {
	if HasRepetitivePattern(answer) {
		return true
	}
	return CountMeaningfulWords(answer) < c.MinAnswerTokens
}

// CountMeaningfulWords counts content tokens below the word level. Each word
// is split into Hangul and Latin/digit runs; fillers and particles trailing a
// non-Hangul stem count zero, and a Hangul stem carrying a copula or 하다/되다
// ending counts twice. A two-word Korean sentence such as
// "프로세스는 독립적입니다" therefore counts three.
func CountMeaningfulWords(text string) int {
	return lo.SumBy(strings.Fields(strings.ToLower(text)), countWordTokens)
}

func countWordTokens(word string) int {
	count := 0
	for i, run := range scriptRuns(word) {
		if _, filler := fillerWords[run]; filler {
			continue
		}
		if !isHangul([]rune(run)[0]) {
			count++
			continue
		}
		if _, particle := particles[run]; particle && i > 0 {
			continue
		}
		count++
		for _, suffix := range predicateSuffixes {
			if len(run) > len(suffix) && strings.HasSuffix(run, suffix) {
				count++
				break
			}
		}
	}
	return count
}

// scriptRuns splits word into maximal Hangul and non-Hangul letter/digit runs,
// dropping punctuation.
func scriptRuns(word string) []string {
	var runs []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			runs = append(runs, string(current))
			current = current[:0]
		}
	}
	for _, r := range word {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(current) > 0 && isHangul(current[0]) != isHangul(r) {
			flush()
		}
		current = append(current, r)
	}
	flush()
	return runs
}

func isHangul(r rune) bool {
	return unicode.Is(unicode.Hangul, r)
}

// HasRepetitivePattern detects a rune other than a newline repeated 5+ times
// in a row (spaces included), a word repeated 3+ times in a row, or a long
// answer made of very few distinct words.
func HasRepetitivePattern(text string) bool {
	var prev rune
	run := 0
	for _, r := range text {
		if r == prev && r != '\n' {
			run++
			if run >= maxRuneRun {
				return true
			}
			continue
		}
		prev, run = r, 1
	}

	words := strings.Fields(text)
	wordRun := 0
	for i := range words {
		if i > 0 && words[i] == words[i-1] {
			wordRun++
			if wordRun >= maxWordRun {
				return true
			}
			continue
		}
		wordRun = 1
	}

	if len(words) >= minWordsForRatio {
		unique := len(lo.Uniq(words))
		if float64(unique)/float64(len(words)) < minUniqueRatio {
			return true
		}
	}
	return false
}
