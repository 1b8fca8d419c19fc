package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateArg(t *testing.T) {
	cases := []struct {
		arg    string
		expect string
	}{
		{"-H User-Agent: Example", "--header 'User-Agent: Example'"},
		{`-H X-Path: C:\dir\file`, `--header 'X-Path: C:\\dir\\file'`},
		{"-b cookies.txt", "--load-cookies=cookies.txt"},
		{"-c jar.txt", "--save-cookies=jar.txt"},
		{"-d a=1&b=2", "--post-data=a=1&b=2"},
		{"-e example.org/start", `--header="Referer: example.org/start"`},
		{"-g", "--no-glob"},
		{"-k", "--no-check-certificate"},
		{"-m 30", "--timeout=30"},
		{"-o out.html", "--output-document=out.html"},
		{"-r 0-499", `--header="Range: bytes=0-499"`},
		{"-s", "--quiet"},
		{"-u alice:secret", "--user=alice:secret"},
		{"-z Wed, 21 Oct 2015 07:28:00 GMT", `--header="If-Modified-Since: Wed, 21 Oct 2015 07:28:00 GMT"`},
		{"-A Mozilla/5.0 (X11)", `--header="User-Agent: Mozilla/5.0 (X11)"`},
		{"-C 1024", "--start-pos=1024"},
		{"-E client.pem", "--certificate=client.pem"},
		{"-I", "--method=HEAD"},
		{"-T upload.bin", "--method=PUT --body-file=upload.bin"},
		{"-X DELETE", "--method=DELETE"},
		{"--compressed", "--compression=auto"},
		{"--connect-timeout 5", "--timeout=5"},
		{"--retry 3", "--tries=3"},
		{"--header Accept: */*", "--header 'Accept: */*'"},
		{"--user-agent ctow", `--header="User-Agent: ctow"`},
		{"--upload-file a.txt", "--method=PUT --body-file=a.txt"},
		{"--request PATCH", "--method=PATCH"},
	}

	for _, tc := range cases {
		t.Run(tc.arg, func(t *testing.T) {
			result, err := TranslateArg(tc.arg)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, result)
		})
	}
}

func TestTranslateArgPassThrough(t *testing.T) {
	result, err := TranslateArg(URLPlaceholder)
	assert.NoError(t, err)
	assert.Equal(t, URLPlaceholder, result)

	result, err = TranslateArg("'http")
	assert.NoError(t, err)
	assert.Equal(t, "'http", result)

	result, err = TranslateArg("'https://example.com/a b'")
	assert.NoError(t, err)
	assert.Equal(t, "'https://example.com/a b'", result)
}

func TestTranslateArgMissingValue(t *testing.T) {
	result, err := TranslateArg("--retry")
	assert.NoError(t, err)
	assert.Equal(t, "--tries=", result)

	result, err = TranslateArg("-H")
	assert.NoError(t, err)
	assert.Equal(t, "--header ''", result)

	// switches keep whatever follows them
	result, err = TranslateArg("--compressed yes")
	assert.NoError(t, err)
	assert.Equal(t, "--compression=auto yes", result)
}

func TestTranslateArgUnknown(t *testing.T) {
	for _, arg := range []string{"-v", "--verbose", "-L", "--data-binary @f", "-", "-h"} {
		t.Run(arg, func(t *testing.T) {
			result, err := TranslateArg(arg)
			assert.ErrorIs(t, err, ErrArgConversion)
			assert.Empty(t, result)
			assert.Equal(t, "Conversion: No valid substitution for argument: "+arg+"!", err.Error())
		})
	}
}
