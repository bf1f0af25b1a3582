package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyThenNil(t *testing.T) {
	assert.Nil(t, EmptyThenNil(""))
	assert.Equal(t, "x", *EmptyThenNil("x"))
}

func TestParseDepth(t *testing.T) {
	assert.Equal(t, -1, ParseDepth(""))
	assert.Equal(t, -1, ParseDepth("abc"))
	assert.Equal(t, -1, ParseDepth("-4"))
	assert.Equal(t, 0, ParseDepth("0"))
	assert.Equal(t, 10, ParseDepth("10"))
}
