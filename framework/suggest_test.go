package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInput(t *testing.T) {
	assert.Empty(t, parseInput(""))
	assert.Empty(t, parseInput("   "))

	assert.Equal(t, []inputComp{
		{raw: "set", tag: "set", cType: compCommand},
		{raw: "--key", tag: "key", value: "A", cType: compFlag},
		{raw: "--value=b", tag: "value", value: "b", cType: compFlag},
		{cType: compCommand},
	}, parseInput("set  --key A --value=b "))
}

func TestSuggestFlagValues(t *testing.T) {
	s, _ := newTestState()

	// flag values are skipped while walking the command tree
	assert.Equal(t, map[string]string{"--upper": "upper case output"}, s.Suggestions("echo --upper x --u"))
	assert.Equal(t, map[string]string{"--upper": "upper case output"}, s.Suggestions("echo --upper=true --up"))
	assert.Empty(t, s.Suggestions("echo --upper "))
	assert.Empty(t, s.Suggestions("--u"))
	assert.Empty(t, s.Suggestions("echo --missing x --u"))
}
