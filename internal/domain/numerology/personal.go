package numerology

import (
	"fmt"
	"strings"
)

// PersonalNumbersMethod labels the personal number set in reports.
const PersonalNumbersMethod = "pythagorean_personal_numbers"

// PersonalNumberSet holds the derived numbers for one person. Every number is
// in {1..9, 11, 22, 33}; NameNumber is nil when no name contributed.
type PersonalNumberSet struct {
	LifePath    int    `json:"life_path"`
	Destiny     int    `json:"destiny"`
	Soul        int    `json:"soul"`
	Mind        int    `json:"mind"`
	Personality int    `json:"personality"`
	Power       int    `json:"power"`
	Ruling      int    `json:"ruling"`
	Problem     int    `json:"problem"`
	NameNumber  *int   `json:"name_number"`
	BirthDate   string `json:"birth_date"`
	Name        string `json:"name"`
	Method      string `json:"method"`
}

// LifePath reduces day + month + year.
func (bd BirthDate) LifePath() int {
	return ReduceToSingleDigit(bd.Day + bd.Month + bd.Year)
}

// Destiny reduces the sum of every individual digit of the date.
func (bd BirthDate) Destiny() int {
	sum := 0
	for _, d := range bd.BirthDigits() {
		sum += d
	}
	return ReduceToSingleDigit(sum)
}

// Soul reduces the day alone.
func (bd BirthDate) Soul() int {
	return ReduceToSingleDigit(bd.Day)
}

// Mind reduces the month alone.
func (bd BirthDate) Mind() int {
	return ReduceToSingleDigit(bd.Month)
}

// Personality reduces the digit sum of the year.
func (bd BirthDate) Personality() int {
	return ReduceToSingleDigit(DigitSum(bd.Year))
}

// Power reduces day × month + year.
func (bd BirthDate) Power() int {
	return ReduceToSingleDigit(bd.Day*bd.Month + bd.Year)
}

// Ruling reduces day + month.
func (bd BirthDate) Ruling() int {
	return ReduceToSingleDigit(bd.Day + bd.Month)
}

// Problem reduces life path + ruling number.
func (bd BirthDate) Problem() int {
	return ReduceToSingleDigit(bd.LifePath() + bd.Ruling())
}

// PersonalNumbers computes the full set for bd. The name is echoed back and
// contributes NameNumber when it contains Cyrillic letters.
func PersonalNumbers(bd BirthDate, name string) PersonalNumberSet {
	return PersonalNumberSet{
		LifePath:    bd.LifePath(),
		Destiny:     bd.Destiny(),
		Soul:        bd.Soul(),
		Mind:        bd.Mind(),
		Personality: bd.Personality(),
		Power:       bd.Power(),
		Ruling:      bd.Ruling(),
		Problem:     bd.Problem(),
		NameNumber:  NameNumber(name),
		BirthDate:   bd.String(),
		Name:        name,
		Method:      PersonalNumbersMethod,
	}
}

// NumberKind names one calculator for partial requests.
type NumberKind string

const (
	KindLifePath    NumberKind = "life_path"
	KindDestiny     NumberKind = "destiny"
	KindSoul        NumberKind = "soul"
	KindMind        NumberKind = "mind"
	KindPersonality NumberKind = "personality"
	KindPower       NumberKind = "power"
	KindRuling      NumberKind = "ruling"
	KindProblem     NumberKind = "problem"
)

var calculators = map[NumberKind]func(BirthDate) int{
	KindLifePath:    BirthDate.LifePath,
	KindDestiny:     BirthDate.Destiny,
	KindSoul:        BirthDate.Soul,
	KindMind:        BirthDate.Mind,
	KindPersonality: BirthDate.Personality,
	KindPower:       BirthDate.Power,
	KindRuling:      BirthDate.Ruling,
	KindProblem:     BirthDate.Problem,
}

// NumberKinds lists every kind accepted by Number, in report order.
func NumberKinds() []NumberKind {
	return []NumberKind{
		KindLifePath, KindDestiny, KindSoul, KindMind,
		KindPersonality, KindPower, KindRuling, KindProblem,
	}
}

// ParseNumberKind maps a user supplied name (case-insensitive, "-" or "_")
// to a NumberKind.
func ParseNumberKind(s string) (NumberKind, error) {
	kind := NumberKind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if _, ok := calculators[kind]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownNumberKind, s)
	}
	return kind, nil
}

// Calculate runs a single calculator.
func Calculate(kind NumberKind, bd BirthDate) (int, error) {
	calc, ok := calculators[kind]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNumberKind, kind)
	}
	return calc(bd), nil
}

// Number parses text and runs a single calculator. Parse failures are
// returned unchanged as *FormatError.
func Number(kind NumberKind, text string) (int, error) {
	bd, err := ParseBirthDate(text)
	if err != nil {
		return 0, err
	}
	return Calculate(kind, bd)
}
