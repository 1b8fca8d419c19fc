package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	cases := []struct {
		name      string
		fragments []string
		expect    string
	}{
		{"url only", []string{"curl http://example.com"}, "wget 'http://example.com'"},
		{"without tool name", []string{"http://example.com"}, "wget 'http://example.com'"},
		{
			"header and compression",
			[]string{"-H Authorization: Bearer abc", "--compressed", "http://api.test/x"},
			"wget --header 'Authorization: Bearer abc' --compression=auto 'http://api.test/x'",
		},
		{
			"shell words",
			[]string{"curl", "-X", "POST", "-d", "a=1", "https://api.test/items", "-s"},
			"wget --method=POST --post-data=a=1 --quiet 'https://api.test/items'",
		},
		{"no url", []string{"curl -k -I"}, "wget --no-check-certificate --method=HEAD <url>"},
		{"last url wins", []string{"curl http://a.test -o a.html http://b.test"}, "wget --output-document=a.html 'http://b.test'"},
		{
			"dual flag is one slot",
			[]string{"curl -T data.json --retry 2 https://up.test"},
			"wget --method=PUT --body-file=data.json --tries=2 'https://up.test'",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Convert(tc.fragments)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, result)
		})
	}
}

func TestConvertFailures(t *testing.T) {
	t.Run("unsupported flag", func(t *testing.T) {
		result, err := Convert([]string{"curl -L -k http://a.test"})
		assert.ErrorIs(t, err, ErrArgConversion)
		assert.Equal(t, KindArgConversion, KindOf(err))
		assert.Empty(t, result)
	})

	t.Run("value before flag", func(t *testing.T) {
		result, err := Convert([]string{"curl", "value", "-k"})
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Empty(t, result)
	})

	t.Run("first failure wins", func(t *testing.T) {
		_, err := Convert([]string{"curl -v -L"})
		var cerr *Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "-v", cerr.Input)
	})
}

func TestConvertDetail(t *testing.T) {
	result, err := ConvertDetail([]string{"curl -s -A ctow/1.0 https://x.test"})
	require.NoError(t, err)

	assert.Equal(t, []Argument{
		{Source: "-s", Target: "--quiet"},
		{Source: "-A ctow/1.0", Target: `--header="User-Agent: ctow/1.0"`},
		{Source: "'https://x.test'", Target: "'https://x.test'"},
	}, result.Arguments)
	assert.Equal(t, `wget --quiet --header="User-Agent: ctow/1.0" 'https://x.test'`, result.Command)
}

func TestTable(t *testing.T) {
	entries := Table()
	require.Len(t, entries, 22)

	for _, entry := range entries {
		for _, flag := range entry.Flags() {
			found, ok := Lookup(flag)
			require.True(t, ok, flag)
			assert.Equal(t, entry.Meaning, found.Meaning)
		}
	}

	// callers get a copy
	entries[0].Meaning = "changed"
	entry, _ := Lookup("-H")
	assert.Equal(t, "set header", entry.Meaning)

	assert.Equal(t, "--header '<value>'", entry.Example())
	entry, _ = Lookup("-I")
	assert.Equal(t, "--method=HEAD", entry.Example())
	entry, _ = Lookup("-T")
	assert.Equal(t, "--method=PUT --body-file=<value>", entry.Example())
}

func TestKind(t *testing.T) {
	assert.Equal(t, "UnrecognisedCommand", KindUnrecognisedCommand.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
	assert.Equal(t, Kind(0), KindOf(assert.AnError))

	err := UnrecognisedCommand("foo")
	assert.ErrorIs(t, err, ErrUnrecognisedCommand)
	assert.NotErrorIs(t, err, ErrArgConversion)
	assert.Equal(t, "Unrecognized command: foo", err.Error())
}
