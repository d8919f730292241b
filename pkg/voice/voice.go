// Package voice interprets spoken commands, as delivered by a speech-to-text
// service, as sequences of calculator keys.
package voice

import (
	"regexp"
	"strings"
)

// Appender wraps the Append method. It is satisfied by *calc.Session.
type Appender interface {
	Append(token string)
}

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

type rule struct {
	// The rule applies if the command contains any of the keywords.
	keywords []string
	// Minimum number of numbers the command must contain.
	numbers int
	tokens  func(nums []string) []string
}

// Rules are tried in order; the first one whose keyword matches decides the
// outcome, even if the command lacks the numbers the rule needs.
var rules = []rule{
	{[]string{"sine", "sin"}, 1, func(n []string) []string { return []string{"sin", n[0], ")"} }},
	{[]string{"square root"}, 1, func(n []string) []string { return []string{"√", n[0], ")"} }},
	{[]string{"add"}, 2, func(n []string) []string { return []string{n[0], "+", n[1]} }},
	{[]string{"factorial"}, 1, func(n []string) []string { return []string{n[0], "x!"} }},
	{[]string{"log"}, 1, func(n []string) []string { return []string{"log", n[0], ")"} }},
}

// Interpret returns the keys for the given command. Matching is
// case-insensitive. It returns nil if the command is not understood.
func Interpret(command string) []string {
	lower := strings.ToLower(command)
	for _, r := range rules {
		if !containsAny(lower, r.keywords) {
			continue
		}
		nums := numberPattern.FindAllString(lower, -1)
		if len(nums) < r.numbers {
			return nil
		}
		return r.tokens(nums)
	}
	return nil
}

// Apply appends the keys for the given command to a, and reports whether the
// command was understood.
func Apply(a Appender, command string) bool {
	tokens := Interpret(command)
	for _, token := range tokens {
		a.Append(token)
	}
	return len(tokens) > 0
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
