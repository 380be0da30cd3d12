package generator

import "unicode"

// Strength is a coarse password rating from VeryWeak to VeryStrong.
type Strength int

const (
	VeryWeak Strength = iota
	Weak
	Medium
	Strong
	VeryStrong
)

func (s Strength) String() string {
	switch s {
	case VeryWeak:
		return "very weak"
	case Weak:
		return "weak"
	case Medium:
		return "medium"
	case Strong:
		return "strong"
	case VeryStrong:
		return "very strong"
	default:
		return "unknown"
	}
}

// Evaluate scores password one point each for a length of at least 8, a
// length of at least 12, a digit and a character that is neither a letter
// nor a digit.
func Evaluate(password string) Strength {
	var (
		length    int
		hasDigit  bool
		hasSymbol bool
	)
	for _, r := range password {
		length++
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r):
			hasSymbol = true
		}
	}

	score := 0
	if length >= 8 {
		score++
	}
	if length >= 12 {
		score++
	}
	if hasDigit {
		score++
	}
	if hasSymbol {
		score++
	}
	return Strength(score)
}
