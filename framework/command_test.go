package framework

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testState struct {
	*CmdState
	raw    []string
	format Format
}

func newTestState() (*testState, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	s := &testState{CmdState: NewCmdState("test")}
	s.SetOutput(buf)
	s.setup()
	return s, buf
}

func (s *testState) setup() {
	s.UpdateState(s.GetCmd(), s, s.setup)
}

func (s *testState) OutputFormat() Format {
	return s.format
}

type echoParam struct {
	ParamBase `use:"echo" desc:"echo arguments"`
	Upper     bool `name:"upper" default:"false" desc:"upper case output"`
	args      []string
}

func (p *echoParam) ParseArgs(args []string) error {
	p.args = args
	return nil
}

func (s *testState) EchoCommand(ctx context.Context, p *echoParam) error {
	line := strings.Join(p.args, " ")
	if p.Upper {
		line = strings.ToUpper(line)
	}
	fmt.Fprintln(s.Out(), line)
	return nil
}

type rawParam struct {
	ParamBase `use:"raw" desc:"keep flags" raw:"true"`
	args      []string
}

func (p *rawParam) ParseArgs(args []string) error {
	p.args = args
	return nil
}

func (s *testState) RawCommand(ctx context.Context, p *rawParam) {
	s.raw = p.args
}

type failParam struct {
	ParamBase `use:"fail" desc:"always fails"`
}

func (s *testState) FailCommand(ctx context.Context, p *failParam) error {
	return errors.New("boom")
}

type thingResult struct {
	ListResultSet[string]
}

func (rs *thingResult) PrintAs(format Format) string {
	switch format {
	case FormatJSON:
		return MarshalJSON(rs.Data)
	default:
		return strings.Join(rs.Data, ",")
	}
}

type showThingParam struct {
	ParamBase `use:"show thing" desc:"show things"`
}

func (s *testState) ShowThingCommand(ctx context.Context, p *showThingParam) (*thingResult, error) {
	return NewListResult[thingResult]([]string{"a", "b"}), nil
}

// notACommand has no CmdParam and must be skipped.
func (s *testState) NotACommand(ctx context.Context) {}

func TestProcessCommands(t *testing.T) {
	t.Run("flags and args", func(t *testing.T) {
		s, buf := newTestState()
		next, err := s.Process("echo --upper hello world")
		require.NoError(t, err)
		assert.Equal(t, s.CmdState, next)
		assert.Equal(t, "HELLO WORLD\n", buf.String())
	})

	t.Run("flags reset after setup", func(t *testing.T) {
		s, buf := newTestState()
		_, err := s.Process("echo --upper a")
		require.NoError(t, err)
		s.SetupCommands()
		_, err = s.Process("echo a")
		require.NoError(t, err)
		assert.Equal(t, "A\na\n", buf.String())
	})

	t.Run("raw arguments", func(t *testing.T) {
		s, _ := newTestState()
		_, err := s.Process("raw -H X-Test: 1 --compressed")
		require.NoError(t, err)
		assert.Equal(t, []string{"-H", "X-Test:", "1", "--compressed"}, s.raw)
	})

	t.Run("error returned", func(t *testing.T) {
		s, _ := newTestState()
		next, err := s.Process("fail")
		assert.EqualError(t, err, "boom")
		assert.Equal(t, s.CmdState, next)
	})

	t.Run("result set format", func(t *testing.T) {
		s, buf := newTestState()
		s.format = FormatPlain
		_, err := s.Process("show thing")
		require.NoError(t, err)
		assert.Equal(t, "a,b\n", buf.String())

		buf.Reset()
		s.format = FormatJSON
		s.SetupCommands()
		_, err = s.Process("show thing")
		require.NoError(t, err)
		assert.JSONEq(t, `["a","b"]`, buf.String())
	})

	t.Run("next state", func(t *testing.T) {
		s, _ := newTestState()
		exit := NewExitState()
		s.SetNext(exit)
		next, err := s.Process("echo bye")
		require.NoError(t, err)
		assert.Equal(t, exit, next)
		assert.Nil(t, s.NextState())
	})
}

func TestSuggestions(t *testing.T) {
	s, _ := newTestState()

	assert.Equal(t, map[string]string{"show": ""}, s.Suggestions("sh"))
	assert.Equal(t, map[string]string{"thing": "show things"}, s.Suggestions("show "))
	assert.Equal(t, map[string]string{"--upper": "upper case output"}, s.Suggestions("echo --u"))
	assert.Empty(t, s.Suggestions(""))
	assert.Empty(t, s.Suggestions("unknown "))
}

func TestExitState(t *testing.T) {
	exit := NewExitState()
	assert.True(t, exit.IsEnding())
	next, err := exit.Process("echo")
	assert.ErrorIs(t, err, ErrExit)
	assert.Equal(t, exit, next)
	assert.Empty(t, exit.Suggestions("e"))
}

func TestParseUseSegments(t *testing.T) {
	assert.Equal(t, []string{"show", "flags"}, ParseUseSegments("show flags"))
	assert.Equal(t, []string{"curl [args]"}, ParseUseSegments("curl [args]"))
}

func TestNameFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, NameFormat("json"))
	assert.Equal(t, FormatTable, NameFormat("table"))
	assert.Equal(t, FormatDefault, NameFormat("unknown"))
	assert.Equal(t, []string{"default", "json", "plain", "table"}, FormatNames())

	rs := NewPresetResultSet(NewListResult[thingResult]([]string{"x"}), FormatPlain)
	assert.Equal(t, "x", rs.String())
}

type countParam struct {
	ParamBase `use:"count"`
	Count     int64 `name:"count" desc:"not a flag kind"`
}

func TestParamFlags(t *testing.T) {
	echo := &echoParam{}
	flags := pflag.NewFlagSet("echo", pflag.ContinueOnError)
	setupFlags(echo, flags)
	require.NotNil(t, flags.Lookup("upper"))
	require.NoError(t, flags.Parse([]string{"--upper"}))
	require.NoError(t, parseFlags(echo, flags))
	assert.True(t, echo.Upper)

	count := &countParam{}
	flags = pflag.NewFlagSet("count", pflag.ContinueOnError)
	setupFlags(count, flags)
	assert.Nil(t, flags.Lookup("count"))
	assert.Error(t, parseFlags(count, flags))
}
