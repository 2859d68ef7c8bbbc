package lovecalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreIsDeterministic(t *testing.T) {
	first := Score("123456789", "987654321")
	second := Score("123456789", "987654321")
	assert.Equal(t, first, second)
}

func TestScoreIsSymmetric(t *testing.T) {
	assert.Equal(t, Score("111", "222"), Score("222", "111"))
}

func TestScoreStaysInRange(t *testing.T) {
	pairs := [][2]string{
		{"1", "2"},
		{"123456789012345678", "876543210987654321"},
		{"0", "0"},
		{"42", "999999999999999999"},
	}
	for _, pair := range pairs {
		score := Score(pair[0], pair[1])
		assert.GreaterOrEqual(t, score, 50)
		assert.LessOrEqual(t, score, 100)
	}
}
