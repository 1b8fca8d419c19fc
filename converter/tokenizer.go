package converter

import "strings"

const (
	// SourceTool is the command name discarded while tokenizing.
	SourceTool = "curl"
	// TargetTool prefixes every converted command.
	TargetTool = "wget"
	// URLPlaceholder stands in for the URL when the input has none.
	URLPlaceholder = "<url>"
)

// JoinFragments joins caller supplied fragments with single spaces.
func JoinFragments(fragments []string) string {
	return strings.Join(fragments, " ")
}

// Tokenize splits a raw curl command into logical arguments. Each argument
// is a flag plus its (possibly multi-word) value; the quoted URL, or
// URLPlaceholder, is always the last element.
//
// Every word equal to SourceTool is dropped, wherever it appears.
func Tokenize(raw string) ([]string, error) {
	var args []string
	url := URLPlaceholder

	for _, word := range strings.Split(raw, " ") {
		switch {
		case word == SourceTool:
			continue
		case strings.HasPrefix(word, "http"):
			// last one wins
			url = "'" + word + "'"
		case strings.HasPrefix(word, "-"):
			args = append(args, word)
		default:
			if len(args) == 0 {
				return nil, InvalidArgument(word)
			}
			args[len(args)-1] += " " + word
		}
	}

	return append(args, url), nil
}
