package numerology

// Master numbers are never reduced further.
const (
	MasterEleven      = 11
	MasterTwentyTwo   = 22
	MasterThirtyThree = 33
)

// IsMasterNumber reports whether n is one of 11, 22 or 33.
func IsMasterNumber(n int) bool {
	return n == MasterEleven || n == MasterTwentyTwo || n == MasterThirtyThree
}

// ReduceToSingleDigit repeatedly replaces n with the sum of its decimal digits
// until it is at most 9. Master numbers are returned unchanged, and the check
// runs before every pass, so 29 reduces to 11 and stops there.
//
// Negative input is reduced by its absolute value.
func ReduceToSingleDigit(n int) int {
	if n < 0 {
		n = -n
	}
	for n > 9 && !IsMasterNumber(n) {
		n = DigitSum(n)
	}
	return n
}

// DigitSum returns the sum of the decimal digits of n (sign ignored).
func DigitSum(n int) int {
	sum := 0
	for _, d := range Digits(n) {
		sum += d
	}
	return sum
}

// Digits returns the decimal digits of n, most significant first.
// Digits(0) is [0].
func Digits(n int) []int {
	if n < 0 {
		n = -n
	}
	if n == 0 {
		return []int{0}
	}
	var reversed []int
	for n > 0 {
		reversed = append(reversed, n%10)
		n /= 10
	}
	digits := make([]int, len(reversed))
	for i, d := range reversed {
		digits[len(reversed)-1-i] = d
	}
	return digits
}

// validNumber reports whether n is in the personal-number range {1..9, 11, 22, 33}.
func validNumber(n int) bool {
	return (n >= 1 && n <= 9) || IsMasterNumber(n)
}

// rootDigit folds a master number down to its single-digit root (11 -> 2,
// 22 -> 4, 33 -> 6). Used where a table only has rows for 1-9.
func rootDigit(n int) int {
	for n > 9 {
		n = DigitSum(n)
	}
	return n
}
