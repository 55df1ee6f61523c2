// Package strength scores passwords for user feedback.
//
// The score is an additive heuristic capped at 100, and the bucket is a
// qualitative label derived from it. Neither is a security guarantee: they
// exist to drive the strength meter and the registration strength rule.
package strength

import "unicode/utf8"

// Score contributions.
const (
	lengthBonus      = 25 // length >= MinLength
	longLengthBonus  = 15 // length >= LongLength, stacks with lengthBonus
	lowerBonus       = 10
	upperBonus       = 15
	digitBonus       = 15
	specialBonus     = 20
	maxScore         = 100
	MinLength        = 8
	LongLength       = 12
	weakUpperBound   = 30
	fairUpperBound   = 60
	goodUpperBound   = 80
)

// Bucket is the qualitative label of a score.
type Bucket int

const (
	BucketNone Bucket = iota
	BucketWeak
	BucketFair
	BucketGood
	BucketStrong
)

var bucketNames = [...]string{"none", "weak", "fair", "good", "strong"}

var bucketLabels = [...]string{"Password strength", "Weak", "Fair", "Good", "Strong"}

func (b Bucket) String() string {
	if b < BucketNone || b > BucketStrong {
		return "unknown"
	}
	return bucketNames[b]
}

// Label is the text shown next to the strength bar.
func (b Bucket) Label() string {
	if b < BucketNone || b > BucketStrong {
		return ""
	}
	return bucketLabels[b]
}

// FillPercent is the width of the strength bar for the bucket.
func (b Bucket) FillPercent() int {
	switch b {
	case BucketWeak:
		return 25
	case BucketFair:
		return 50
	case BucketGood:
		return 75
	case BucketStrong:
		return 100
	default:
		return 0
	}
}

// Score is the evaluated strength of a password.
type Score struct {
	Value  int
	Bucket Bucket
}

// Evaluate returns the strength score of password. Lengths are measured in
// code points; letters and digits are the ASCII classes, anything else
// counts as a special character.
func Evaluate(password string) Score {
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}

	n := utf8.RuneCountInString(password)
	value := 0
	if n >= MinLength {
		value += lengthBonus
	}
	if lower {
		value += lowerBonus
	}
	if upper {
		value += upperBonus
	}
	if digit {
		value += digitBonus
	}
	if special {
		value += specialBonus
	}
	if n >= LongLength {
		value += longLengthBonus
	}
	if value > maxScore {
		value = maxScore
	}

	return Score{Value: value, Bucket: BucketOf(value)}
}

// BucketOf maps a score to its bucket. Only the empty password scores 0.
func BucketOf(score int) Bucket {
	switch {
	case score <= 0:
		return BucketNone
	case score < weakUpperBound:
		return BucketWeak
	case score < fairUpperBound:
		return BucketFair
	case score < goodUpperBound:
		return BucketGood
	default:
		return BucketStrong
	}
}
