package framework

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type compType int

const (
	compCommand compType = iota + 1
	compFlag
)

// inputComp is one parsed word of the input line.
type inputComp struct {
	// raw is the word as typed
	raw string
	// tag is command name for command, or flag name for flag
	tag string
	// value is the flag value if any
	value string
	cType compType
}

// parseInput splits the line into components, a flag swallows the next
// word as its value. A trailing blank adds an empty command component.
func parseInput(input string) []inputComp {
	parts := lo.Filter(strings.Split(input, " "), func(part string, _ int) bool {
		return part != ""
	})

	comps := make([]inputComp, 0, len(parts)+1)
	flagValue := false
	for _, part := range parts {
		if flagValue {
			comps[len(comps)-1].value = part
			flagValue = false
			continue
		}
		if !strings.HasPrefix(part, "-") {
			comps = append(comps, inputComp{raw: part, tag: part, cType: compCommand})
			continue
		}
		tag, value, found := strings.Cut(strings.TrimLeft(part, "-"), "=")
		flagValue = !found
		comps = append(comps, inputComp{raw: part, tag: tag, value: value, cType: compFlag})
	}

	if len(comps) > 0 && strings.HasSuffix(input, " ") {
		comps = append(comps, inputComp{cType: compCommand})
	}
	return comps
}

// candidate is one possible completion at the current position.
type candidate interface {
	Match(inputComp) bool
	NextCandidates([]candidate) []candidate
	Suggest(inputComp) map[string]string
}

// cmdCandidate wraps cobra.Command as candidate.
type cmdCandidate struct {
	*cobra.Command
}

func (c *cmdCandidate) Match(input inputComp) bool {
	return input.cType == compCommand && c.Name() == input.tag
}

// NextCandidates returns all sub commands and flags.
func (c *cmdCandidate) NextCandidates([]candidate) []candidate {
	result := lo.Map(c.Commands(), func(cmd *cobra.Command, _ int) candidate {
		return &cmdCandidate{Command: cmd}
	})
	c.Flags().VisitAll(func(flag *pflag.Flag) {
		result = append(result, &flagCandidate{Flag: flag})
	})
	return result
}

func (c *cmdCandidate) Suggest(target inputComp) map[string]string {
	if c.Hidden || target.cType != compCommand || !strings.HasPrefix(c.Name(), target.tag) {
		return nil
	}
	return map[string]string{c.Name(): c.Short}
}

// flagCandidate wraps pflag.Flag as candidate.
type flagCandidate struct {
	*pflag.Flag
}

func (c *flagCandidate) Match(input inputComp) bool {
	return input.cType == compFlag && input.tag == c.Name
}

// NextCandidates keeps the current level, the flag value is already
// consumed by the component.
func (c *flagCandidate) NextCandidates(current []candidate) []candidate {
	return current
}

func (c *flagCandidate) Suggest(target inputComp) map[string]string {
	k := fmt.Sprintf("--%s", c.Name)
	if !strings.HasPrefix(target.raw, "--") || !strings.HasPrefix(k, target.raw) {
		return nil
	}
	return map[string]string{k: c.Usage}
}

// SuggestInputCommands returns suggestions based on command setup.
//
// Completed words walk down the command tree, the last (partial) word is
// matched by prefix against subcommands, or against flags when it starts
// with "--". A trailing blank suggests every sub command at the current level.
func SuggestInputCommands(input string, commands []*cobra.Command) map[string]string {
	result := make(map[string]string)
	comps := parseInput(input)
	if len(comps) == 0 {
		return result
	}

	candidates := lo.Map(commands, func(cmd *cobra.Command, _ int) candidate {
		return &cmdCandidate{Command: cmd}
	})

	// reduce leading components
	// "set config --key A" targets "A", "set config" targets "config"
loop:
	for _, comp := range comps[:len(comps)-1] {
		for _, c := range candidates {
			if c.Match(comp) {
				candidates = c.NextCandidates(candidates)
				continue loop
			}
		}
		return result
	}

	target := comps[len(comps)-1]
	for _, c := range candidates {
		for k, v := range c.Suggest(target) {
			result[k] = v
		}
	}
	return result
}
