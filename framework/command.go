package framework

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type commandItem struct {
	kws []string
	cmd *cobra.Command
}

// formatProvider is implemented by states which pick the output format
// of returned result sets.
type formatProvider interface {
	OutputFormat() Format
}

func parseFunctionCommands(state State) []commandItem {
	v := reflect.ValueOf(state)
	tp := v.Type()

	var commands []commandItem
	for i := 0; i < v.NumMethod(); i++ {
		mt := tp.Method(i)

		// parse method like with pattern %Command
		if !strings.HasSuffix(mt.Name, "Command") {
			continue
		}

		cmd, uses, ok := parseMethod(state, mt)
		if !ok {
			continue
		}

		commands = append(commands, commandItem{
			kws: uses[:len(uses)-1],
			cmd: cmd,
		})
	}

	return commands
}

func parseMethod(state State, mt reflect.Method) (*cobra.Command, []string, bool) {
	v := reflect.ValueOf(state)
	t := mt.Type

	// receiver, context.Context, CmdParam
	if t.NumIn() != 3 {
		return nil, nil, false
	}
	if !t.In(1).Implements(reflect.TypeOf((*context.Context)(nil)).Elem()) {
		return nil, nil, false
	}
	paramType := t.In(2)
	if paramType.Kind() != reflect.Pointer || !paramType.Implements(reflect.TypeOf((*CmdParam)(nil)).Elem()) {
		return nil, nil, false
	}

	cp := reflect.New(paramType.Elem()).Interface().(CmdParam)
	use, short := cp.Desc()
	fUse, fDesc := GetCmdFromFlag(cp)
	if len(use) == 0 {
		use = fUse
	}
	if len(short) == 0 {
		short = fDesc
	}
	if len(use) == 0 {
		fnName := mt.Name
		use = strings.ToLower(fnName[:len(fnName)-len("Command")])
	}
	uses := ParseUseSegments(use)
	lastKw := uses[len(uses)-1]

	cmd := &cobra.Command{
		Use:                lastKw,
		Short:              short,
		DisableFlagParsing: getParamBaseTag(cp, "raw") == "true",
	}
	if aliases := getParamBaseTag(cp, "alias"); aliases != "" {
		cmd.Aliases = strings.Split(aliases, ",")
	}
	setupFlags(cp, cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cp := reflect.New(paramType.Elem()).Interface().(CmdParam)

		if err := cp.ParseArgs(args); err != nil {
			return err
		}
		if !cmd.DisableFlagParsing {
			if err := parseFlags(cp, cmd.Flags()); err != nil {
				return err
			}
		}
		ctx, cancel := state.Ctx()
		defer cancel()

		m := v.MethodByName(mt.Name)
		results := m.Call([]reflect.Value{
			reflect.ValueOf(ctx),
			reflect.ValueOf(cp),
		})
		// reverse order, check error first
		for i := 0; i < len(results); i++ {
			result := results[len(results)-i-1]
			switch {
			case result.Type().Implements(reflect.TypeOf((*error)(nil)).Elem()):
				// error nil, skip
				if result.IsNil() {
					continue
				}
				return result.Interface().(error)
			case result.Type().Implements(reflect.TypeOf((*ResultSet)(nil)).Elem()):
				if result.IsNil() {
					continue
				}
				rs := result.Interface().(ResultSet)
				if preset, ok := rs.(*PresetResultSet); ok {
					fmt.Fprintln(cmd.OutOrStdout(), preset.String())
					return nil
				}
				format := FormatDefault
				if fp, ok := state.(formatProvider); ok {
					format = fp.OutputFormat()
				}
				fmt.Fprintln(cmd.OutOrStdout(), rs.PrintAs(format))
			}
		}
		return nil
	}
	return cmd, uses, true
}

// GetCmdFromFlag returns the use and desc tags declared on ParamBase.
func GetCmdFromFlag(p CmdParam) (string, string) {
	return getParamBaseTag(p, "use"), getParamBaseTag(p, "desc")
}

func getParamBaseTag(p CmdParam, key string) string {
	v := reflect.ValueOf(p)
	if v.Kind() != reflect.Pointer {
		return ""
	}

	for v.Kind() != reflect.Struct {
		v = v.Elem()
	}
	tp := v.Type()

	f, has := tp.FieldByName("ParamBase")
	if !has {
		return ""
	}

	if f.Type.Kind() != reflect.Struct {
		return ""
	}

	return f.Tag.Get(key)
}

func ParseUseSegments(use string) []string {
	parts := strings.Split(use, " ")
	last := ""
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.HasPrefix(part, "[") && strings.HasSuffix(part, "]") {
			last = fmt.Sprintf("%s %s", last, part)
			continue
		}
		if len(last) > 0 {
			result = append(result, last)
		}
		last = part
	}
	if len(last) > 0 {
		result = append(result, last)
	}
	return result
}

// flagFields returns the param struct and its exported fields which are
// bound to flags, the embedded ParamBase is skipped.
func flagFields(p CmdParam) (reflect.Value, []reflect.StructField, error) {
	v := reflect.ValueOf(p)
	if v.Kind() != reflect.Pointer {
		return v, nil, errors.New("param is not pointer")
	}
	v = v.Elem()

	var fields []reflect.StructField
	for _, f := range reflect.VisibleFields(v.Type()) {
		if !f.IsExported() || f.Anonymous || len(f.Index) > 1 {
			continue
		}
		fields = append(fields, f)
	}
	return v, fields, nil
}

// setupFlags declares one flag per param field, named by its name tag.
func setupFlags(p CmdParam, flags *pflag.FlagSet) {
	_, fields, err := flagFields(p)
	if err != nil {
		return
	}
	for _, f := range fields {
		name, defaultStr, desc := f.Tag.Get("name"), f.Tag.Get("default"), f.Tag.Get("desc")
		switch f.Type.Kind() {
		case reflect.String:
			flags.String(name, defaultStr, desc)
		case reflect.Bool:
			dv, _ := strconv.ParseBool(defaultStr)
			flags.Bool(name, dv, desc)
		}
	}
}

// parseFlags copies parsed flag values back to the param fields.
func parseFlags(p CmdParam, flags *pflag.FlagSet) error {
	v, fields, err := flagFields(p)
	if err != nil {
		return err
	}
	for _, f := range fields {
		name := f.Tag.Get("name")
		switch f.Type.Kind() {
		case reflect.String:
			value, err := flags.GetString(name)
			if err != nil {
				return err
			}
			v.FieldByIndex(f.Index).SetString(value)
		case reflect.Bool:
			value, err := flags.GetBool(name)
			if err != nil {
				return err
			}
			v.FieldByIndex(f.Index).SetBool(value)
		default:
			return errors.Newf("field %s with kind %s not supported yet", f.Name, f.Type.Kind())
		}
	}
	return nil
}
