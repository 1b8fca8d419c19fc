package converter

import "strings"

// RuleKind is the shape of a rewrite rule.
type RuleKind int32

const (
	// RuleSwitch replaces the flag token with a fixed wget token.
	RuleSwitch RuleKind = iota + 1
	// RuleValue joins a wget prefix such as "--tries=" with the value.
	RuleValue
	// RuleQuotedHeader wraps the value in a single-quoted --header,
	// doubling every backslash in it.
	RuleQuotedHeader
	// RuleSynthHeader builds --header="Name: value" from a non-header flag.
	RuleSynthHeader
	// RuleDual emits two wget flags, the second one carrying the value.
	RuleDual
)

var ruleKindNames = map[RuleKind]string{
	RuleSwitch:       "switch",
	RuleValue:        "value",
	RuleQuotedHeader: "quoted-header",
	RuleSynthHeader:  "header",
	RuleDual:         "dual",
}

func (k RuleKind) String() string {
	return ruleKindNames[k]
}

// Rule describes how one curl flag is rewritten.
//
// Target meaning depends on Kind: the wget token (RuleSwitch), the wget
// prefix (RuleValue), the header name (RuleSynthHeader) or the first wget
// flag (RuleDual). Prefix is prepended to the value for RuleSynthHeader
// and RuleDual.
type Rule struct {
	Kind   RuleKind
	Target string
	Prefix string
}

// Apply rewrites the value of a logical argument. hasValue is false when
// the argument was the bare flag token.
func (r Rule) Apply(value string, hasValue bool) string {
	switch r.Kind {
	case RuleSwitch:
		if hasValue {
			return r.Target + " " + value
		}
		return r.Target
	case RuleValue:
		return r.Target + value
	case RuleQuotedHeader:
		return "--header '" + strings.ReplaceAll(value, `\`, `\\`) + "'"
	case RuleSynthHeader:
		return `--header="` + r.Target + ": " + r.Prefix + value + `"`
	case RuleDual:
		return r.Target + " " + r.Prefix + value
	}
	return value
}

// Entry is one row of the translation table.
type Entry struct {
	// Short is the single-dash curl flag, empty for long-only flags.
	Short string
	// Long is the double-dash curl flag.
	Long    string
	Meaning string
	Rule    Rule
}

// Flags returns every token the entry is reachable through.
func (e Entry) Flags() []string {
	if e.Short == "" {
		return []string{e.Long}
	}
	return []string{e.Short, e.Long}
}

// Example renders the wget form with a "<value>" placeholder.
func (e Entry) Example() string {
	if e.Rule.Kind == RuleSwitch {
		return e.Rule.Apply("", false)
	}
	return e.Rule.Apply("<value>", true)
}

var table = []Entry{
	{Short: "-H", Long: "--header", Meaning: "set header", Rule: Rule{Kind: RuleQuotedHeader}},
	{Short: "-b", Long: "--cookie", Meaning: "load cookies", Rule: Rule{Kind: RuleValue, Target: "--load-cookies="}},
	{Short: "-c", Long: "--cookie-jar", Meaning: "save cookies", Rule: Rule{Kind: RuleValue, Target: "--save-cookies="}},
	{Short: "-d", Long: "--data", Meaning: "post data", Rule: Rule{Kind: RuleValue, Target: "--post-data="}},
	{Short: "-e", Long: "--referer", Meaning: "referer", Rule: Rule{Kind: RuleSynthHeader, Target: "Referer"}},
	{Short: "-g", Long: "--globoff", Meaning: "disable globbing", Rule: Rule{Kind: RuleSwitch, Target: "--no-glob"}},
	{Short: "-k", Long: "--insecure", Meaning: "insecure", Rule: Rule{Kind: RuleSwitch, Target: "--no-check-certificate"}},
	{Short: "-m", Long: "--max-time", Meaning: "max time", Rule: Rule{Kind: RuleValue, Target: "--timeout="}},
	{Short: "-o", Long: "--output", Meaning: "output file", Rule: Rule{Kind: RuleValue, Target: "--output-document="}},
	{Short: "-r", Long: "--range", Meaning: "byte range", Rule: Rule{Kind: RuleSynthHeader, Target: "Range", Prefix: "bytes="}},
	{Short: "-s", Long: "--silent", Meaning: "silent", Rule: Rule{Kind: RuleSwitch, Target: "--quiet"}},
	{Short: "-u", Long: "--user", Meaning: "user credentials", Rule: Rule{Kind: RuleValue, Target: "--user="}},
	{Short: "-z", Long: "--time-cond", Meaning: "if-modified-since", Rule: Rule{Kind: RuleSynthHeader, Target: "If-Modified-Since"}},
	{Short: "-A", Long: "--user-agent", Meaning: "user agent", Rule: Rule{Kind: RuleSynthHeader, Target: "User-Agent"}},
	{Short: "-C", Long: "--continue-at", Meaning: "resume offset", Rule: Rule{Kind: RuleValue, Target: "--start-pos="}},
	{Short: "-E", Long: "--cert", Meaning: "client certificate", Rule: Rule{Kind: RuleValue, Target: "--certificate="}},
	{Short: "-I", Long: "--head", Meaning: "HEAD request", Rule: Rule{Kind: RuleSwitch, Target: "--method=HEAD"}},
	{Short: "-T", Long: "--upload-file", Meaning: "upload file", Rule: Rule{Kind: RuleDual, Target: "--method=PUT", Prefix: "--body-file="}},
	{Short: "-X", Long: "--request", Meaning: "custom method", Rule: Rule{Kind: RuleValue, Target: "--method="}},
	{Long: "--compressed", Meaning: "request compression", Rule: Rule{Kind: RuleSwitch, Target: "--compression=auto"}},
	{Long: "--connect-timeout", Meaning: "connect timeout", Rule: Rule{Kind: RuleValue, Target: "--timeout="}},
	{Long: "--retry", Meaning: "retry count", Rule: Rule{Kind: RuleValue, Target: "--tries="}},
}

// byFlag indexes table by every short and long token. Read-only after init.
var byFlag map[string]Entry

func init() {
	byFlag = make(map[string]Entry, len(table)*2)
	for _, entry := range table {
		for _, flag := range entry.Flags() {
			if _, dup := byFlag[flag]; dup {
				panic("duplicate translation table flag " + flag)
			}
			byFlag[flag] = entry
		}
	}
}

// Lookup returns the table entry for a curl flag token.
func Lookup(flag string) (Entry, bool) {
	entry, ok := byFlag[flag]
	return entry, ok
}

// Table returns a copy of the translation table in declaration order.
func Table() []Entry {
	result := make([]Entry, len(table))
	copy(result, table)
	return result
}
