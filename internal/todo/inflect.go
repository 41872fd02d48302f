package todo

import "strings"

// ActiveForm turns an imperative task description into a present-participle
// one by inflecting the first word: "Write tests" becomes "Writing tests".
// It is an English heuristic (drop trailing e, double a
// consonant-vowel-consonant tail, otherwise append "ing"), not a grammar
// engine; irregular verbs come out wrong and that is accepted behavior.
func ActiveForm(content string) string {
	if content == "" {
		return ""
	}

	verb, rest, hasRest := strings.Cut(content, " ")
	inflected := inflect(verb)
	if !hasRest {
		return inflected
	}
	return inflected + " " + rest
}

func inflect(verb string) string {
	n := len(verb)
	switch {
	case n == 0:
		return verb
	case verb[n-1] == 'e' || verb[n-1] == 'E':
		return verb[:n-1] + "ing"
	case n >= 3 && isConsonant(verb[n-1]) && isVowel(verb[n-2]) && isConsonant(verb[n-3]):
		return verb + string(verb[n-1]) + "ing"
	default:
		return verb + "ing"
	}
}

func isVowel(c byte) bool {
	switch c | 0x20 {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func isConsonant(c byte) bool {
	lower := c | 0x20
	return lower >= 'a' && lower <= 'z' && !isVowel(c)
}
