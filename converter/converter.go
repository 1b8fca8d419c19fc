package converter

import "strings"

// Argument pairs a curl logical argument with its wget translation.
type Argument struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Result is a successful conversion.
type Result struct {
	Arguments []Argument `json:"arguments"`
	Command   string     `json:"command"`
}

// Convert translates curl fragments into a wget command line.
// The fragments are joined with single spaces and re-tokenized, so passing
// the whole line as one fragment works as well.
func Convert(fragments []string) (string, error) {
	result, err := ConvertDetail(fragments)
	if err != nil {
		return "", err
	}
	return result.Command, nil
}

// ConvertDetail works like Convert and also reports every translated
// argument. The first failure aborts the conversion.
func ConvertDetail(fragments []string) (*Result, error) {
	args, err := Tokenize(JoinFragments(fragments))
	if err != nil {
		return nil, err
	}

	result := &Result{
		Arguments: make([]Argument, 0, len(args)),
	}
	translated := make([]string, 0, len(args))
	for _, arg := range args {
		target, err := TranslateArg(arg)
		if err != nil {
			return nil, err
		}
		result.Arguments = append(result.Arguments, Argument{Source: arg, Target: target})
		translated = append(translated, target)
	}

	result.Command = TargetTool + " " + strings.Join(translated, " ")
	return result, nil
}
