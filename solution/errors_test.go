package solution

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError_Error(t *testing.T) {
	e := &ParseError{FilePath: "App.sln", Line: 14, Token: "EndProject", Message: "closing marker with no open block"}
	assert.Equal(t, `App.sln:14: closing marker with no open block (near "EndProject")`, e.Error())

	noLine := &ParseError{FilePath: "App.sln", Message: "not a .sln file"}
	assert.Equal(t, "App.sln: not a .sln file", noLine.Error())
}

func TestModelError_WrapsSentinel(t *testing.T) {
	err := modelError(ErrCyclicNesting, "{11111111-1111-1111-1111-111111111111}")
	assert.True(t, errors.Is(err, ErrCyclicNesting))
	assert.Contains(t, err.Error(), "{11111111-1111-1111-1111-111111111111}")
}
