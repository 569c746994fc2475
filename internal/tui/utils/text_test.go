package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Naruto", Truncate("Naruto", 10))
	assert.Equal(t, "Naruto ...", Truncate("Naruto Shippuden", 10))
	assert.Equal(t, "..", Truncate("Naruto", 2))
	assert.Equal(t, "", Truncate("Naruto", 0))
	// wide runes take two cells each
	assert.Equal(t, "進撃...", Truncate("進撃の巨人", 8))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"a quick", "brown", "fox"}, Wrap("a quick brown fox", 7))
	assert.Equal(t, []string{"supercalifragilistic", "x"}, Wrap("supercalifragilistic x", 5))
	assert.Nil(t, Wrap("   ", 10))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, "one two\nthree...", Clamp("one two three four five six", 2, 9))
	assert.Equal(t, "one two", Clamp("one two", 3, 12))
	assert.Equal(t, "abcdefg\nhijk...", Clamp("abcdefg hijklmno pq", 2, 7))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 3))
}
