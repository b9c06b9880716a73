package numerology

import "unicode"

// cyrillicAlphabet is numbered 1..9 cyclically: А=1 ... З=9, И=1 ... Я=6.
const cyrillicAlphabet = "АБВГДЕЁЖЗИЙКЛМНОПРСТУФХЦЧШЩЪЫЬЭЮЯ"

var letterValues = buildLetterValues()

func buildLetterValues() map[rune]int {
	values := make(map[rune]int, 33)
	for i, r := range []rune(cyrillicAlphabet) {
		values[r] = i%9 + 1
	}
	return values
}

// LetterValue returns the numeric value of a Cyrillic letter (any case) and
// false for every other rune.
func LetterValue(r rune) (int, bool) {
	v, ok := letterValues[unicode.ToUpper(r)]
	return v, ok
}

// NameNumber reduces the sum of the letter values of name. Non-Cyrillic runes
// are ignored; nil is returned when nothing contributed.
func NameNumber(name string) *int {
	sum := 0
	for _, r := range name {
		if v, ok := LetterValue(r); ok {
			sum += v
		}
	}
	if sum == 0 {
		return nil
	}
	n := ReduceToSingleDigit(sum)
	return &n
}
