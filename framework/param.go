package framework

// CmdParam is the interface definition for command parameter.
type CmdParam interface {
	ParseArgs(args []string) error
	Desc() (string, string)
}

// ParamBase implements CmdParam with an empty args parser.
//
// Command metadata is declared with struct tags on the embedded field:
//
//	framework.ParamBase `use:"show flags" desc:"list supported flags"`
//
// `raw:"true"` hands every argument to ParseArgs untouched, flags included.
// `alias:"a,b"` registers command aliases.
type ParamBase struct{}

func (pb ParamBase) ParseArgs(args []string) error {
	return nil
}

func (pb ParamBase) Desc() (string, string) {
	return "", ""
}
