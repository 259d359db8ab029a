package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "ул. Немига, 5", NormalizeWhitespace("\n  ул. Немига,\t 5 \n"))
	assert.Empty(t, NormalizeWhitespace(" \n\t "))
}

func TestBetween(t *testing.T) {
	got, ok := Between("пр. Победителей, 9 (ТРЦ Galleria Minsk)", "(", ")")
	assert.True(t, ok)
	assert.Equal(t, "ТРЦ Galleria Minsk", got)

	_, ok = Between("no parentheses here", "(", ")")
	assert.False(t, ok)

	_, ok = Between("unclosed (here", "(", ")")
	assert.False(t, ok)
}
