package states

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/ctow-cli/ctow/converter"
	"github.com/ctow-cli/ctow/framework"
)

type ShowFlagsParam struct {
	framework.ParamBase `use:"show flags" desc:"lists the supported curl flags"`
}

func (app *ApplicationState) ShowFlagsCommand(ctx context.Context, p *ShowFlagsParam) (*Flags, error) {
	return framework.NewListResult[Flags](converter.Table()), nil
}

// Flags is the result set of the translation table.
type Flags struct {
	framework.ListResultSet[converter.Entry]
}

type flagView struct {
	Curl    []string `json:"curl"`
	Wget    string   `json:"wget"`
	Meaning string   `json:"meaning"`
	Rule    string   `json:"rule"`
}

func (rs *Flags) PrintAs(format framework.Format) string {
	switch format {
	case framework.FormatJSON:
		return framework.MarshalJSON(rs.Entities())
	case framework.FormatPlain:
		sb := &strings.Builder{}
		for _, e := range rs.Data {
			fmt.Fprintf(sb, "%s -> %s\n", strings.Join(e.Flags(), ", "), e.Example())
		}
		return strings.TrimSuffix(sb.String(), "\n")
	default:
		t := table.NewWriter()
		t.AppendHeader(table.Row{"Short", "Long", "Meaning", "wget"})
		for _, e := range rs.Data {
			t.AppendRow(table.Row{e.Short, e.Long, e.Meaning, e.Example()})
		}
		return t.Render()
	}
}

// Entities returns the json friendly view of the table.
func (rs *Flags) Entities() any {
	return lo.Map(rs.Data, func(e converter.Entry, _ int) flagView {
		return flagView{Curl: e.Flags(), Wget: e.Example(), Meaning: e.Meaning, Rule: e.Rule.Kind.String()}
	})
}
