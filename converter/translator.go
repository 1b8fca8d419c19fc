package converter

import "strings"

// TranslateArg rewrites one logical argument into its wget form.
// The placeholder and already quoted URLs pass through unchanged.
func TranslateArg(arg string) (string, error) {
	if arg == URLPlaceholder || strings.HasPrefix(arg, "'http") {
		return arg, nil
	}

	flag, value, hasValue := strings.Cut(arg, " ")
	entry, ok := Lookup(flag)
	if !ok {
		return "", ArgConversion(arg)
	}
	return entry.Rule.Apply(value, hasValue), nil
}
