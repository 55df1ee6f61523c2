package strength

import (
	"strings"
	"testing"
	"testing/quick"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     int
		bucket   Bucket
	}{
		{name: "empty", password: "", want: 0, bucket: BucketNone},
		{name: "lower only short", password: "abc", want: 10, bucket: BucketWeak},
		{name: "digits only short", password: "12345", want: 15, bucket: BucketWeak},
		{name: "lower long", password: "abcdefgh", want: 35, bucket: BucketFair},
		{name: "mixed case digit", password: "Password1", want: 65, bucket: BucketGood},
		{name: "all classes short", password: "aB1!", want: 60, bucket: BucketGood},
		{name: "all classes long", password: "Password1!xyz", want: 100, bucket: BucketStrong},
		{name: "all classes eight", password: "Passw0rd!", want: 85, bucket: BucketStrong},
		{name: "non ascii counts as special", password: "пароль", want: 20, bucket: BucketWeak},
		{name: "space counts as special", password: "a b", want: 30, bucket: BucketFair},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.password)
			assert.Equal(t, tt.want, got.Value)
			assert.Equal(t, tt.bucket, got.Bucket)
		})
	}
}

func TestBucketOf_Boundaries(t *testing.T) {
	assert.Equal(t, BucketNone, BucketOf(0))
	assert.Equal(t, BucketWeak, BucketOf(1))
	assert.Equal(t, BucketWeak, BucketOf(29))
	assert.Equal(t, BucketFair, BucketOf(30))
	assert.Equal(t, BucketFair, BucketOf(59))
	assert.Equal(t, BucketGood, BucketOf(60))
	assert.Equal(t, BucketGood, BucketOf(79))
	assert.Equal(t, BucketStrong, BucketOf(80))
	assert.Equal(t, BucketStrong, BucketOf(100))
}

func TestBucket_LabelAndFill(t *testing.T) {
	assert.Equal(t, "Password strength", BucketNone.Label())
	assert.Equal(t, "Strong", BucketStrong.Label())
	assert.Equal(t, 0, BucketNone.FillPercent())
	assert.Equal(t, 50, BucketFair.FillPercent())
	assert.Equal(t, "good", BucketGood.String())
	assert.Equal(t, "unknown", Bucket(42).String())
}

func TestEvaluate_ShortPasswordsNeverExceed75(t *testing.T) {
	f := func(s string) bool {
		if utf8.RuneCountInString(s) >= MinLength {
			return true
		}
		return Evaluate(s).Value <= 75
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	f := func(s string) bool {
		return Evaluate(s) == Evaluate(s)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestEvaluate_MonotonicUnderClassAddition(t *testing.T) {
	additions := []string{"a", "Z", "7", "#"}
	f := func(s string) bool {
		base := Evaluate(s)
		for _, add := range additions {
			got := Evaluate(s + add)
			if got.Value < base.Value || got.Bucket < base.Bucket {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestEvaluate_ScoreInRange(t *testing.T) {
	f := func(s string) bool {
		v := Evaluate(s).Value
		return v >= 0 && v <= 100
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 100, Evaluate(strings.Repeat("aA1!", 10)).Value)
}
