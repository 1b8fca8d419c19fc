package states

import (
	"context"
	"strings"

	"github.com/fatih/color"
	"github.com/google/shlex"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ctow-cli/ctow/converter"
	"github.com/ctow-cli/ctow/framework"
)

type CurlParam struct {
	framework.ParamBase `use:"curl [...]" desc:"translates a curl command to a wget command" raw:"true"`
	fragments           []string
}

// ParseArgs rebuilds the typed line and re-splits it so quoted header
// values reach the converter without their quotes.
func (p *CurlParam) ParseArgs(args []string) error {
	p.fragments = SplitFragments(strings.Join(append([]string{converter.SourceTool}, args...), " "))
	return nil
}

// SplitFragments splits a command line into words, removing shell quotes.
// Lines where shell rules would change more than the quotes (escapes,
// comments, repeated spaces, tabs or newlines) and lines with an unclosed
// quote are split on single spaces, the same way the converter does.
func SplitFragments(line string) []string {
	words := strings.Split(line, " ")
	if !quotesOnly(line, words) {
		return words
	}
	split, err := shlex.Split(line)
	if err != nil {
		return words
	}
	return split
}

// quotesOnly reports whether shlex would only strip quotes from line.
func quotesOnly(line string, words []string) bool {
	if strings.ContainsAny(line, "\\\t\r\n") {
		return false
	}
	for _, word := range words {
		// empty words are kept by the converter, a leading # starts a comment
		if word == "" || strings.HasPrefix(word, "#") {
			return false
		}
	}
	return true
}

// CurlCommand converts the curl command typed after "curl".
func (app *ApplicationState) CurlCommand(ctx context.Context, p *CurlParam) (*ConversionResult, error) {
	result, err := converter.ConvertDetail(p.fragments)
	if err != nil {
		return nil, err
	}
	return &ConversionResult{Result: result}, nil
}

// ConversionResult wraps converter.Result as framework.ResultSet.
type ConversionResult struct {
	*converter.Result
}

var _ framework.ResultSet = (*ConversionResult)(nil)

func (rs *ConversionResult) PrintAs(format framework.Format) string {
	switch format {
	case framework.FormatPlain:
		return rs.Command
	case framework.FormatJSON:
		return framework.MarshalJSON(rs.Result)
	case framework.FormatTable:
		t := table.NewWriter()
		t.AppendHeader(table.Row{converter.SourceTool, converter.TargetTool})
		for _, arg := range rs.Arguments {
			t.AppendRow(table.Row{arg.Source, arg.Target})
		}
		t.AppendFooter(table.Row{"", rs.Command})
		// keep the command copyable
		t.Style().Format.Footer = text.FormatDefault
		return t.Render()
	default:
		return color.New(color.Bold).Sprint("Here's your command!") + "\n" + rs.Command
	}
}

func (rs *ConversionResult) Entities() any {
	return rs.Result
}
