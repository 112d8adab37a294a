// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mathfmt converts LaTeX-like and ASCII math notation in assistant
// replies into plain Unicode symbols suitable for a terminal.
//
// The conversion is an ordered list of regular-expression rules. Order is
// significant: every rule sees the output of the rules before it. Most rules
// replace every match, but the spelled-out word rules replace only the first
// match per call, so Normalize is not idempotent for those words.
package mathfmt

import (
	"regexp"
)

// =============================================================================
// RULE TYPES
// =============================================================================

// Scope selects how many matches a rule replaces.
type Scope int

const (
	ScopeAll   Scope = iota // Replace every non-overlapping match
	ScopeFirst              // Replace only the leftmost match
)

// Stage groups rules into the pipeline phases. Stages run in ascending order.
type Stage int

const (
	StageDelimiters Stage = iota + 1 // \[..\], \(..\), $$..$$, $..$
	StageLineBreaks                  // \\ line-break command
	StageStructures                  // \frac{A}{B}, \sqrt{A}
	StageCommands                    // \times, \pi, escaped braces, spacing commands
	StageWords                       // pi, theta, !=, >=, sqrt( ... (first match only)
	StageOperators                   // ASCII * and / between operands
)

// Rule is a single substitution in the pipeline.
type Rule struct {
	Stage       Stage
	Pattern     *regexp.Regexp
	Replacement string // Expanded with regexp template syntax (${1})
	Scope       Scope
}

// Apply runs the rule against text.
func (r Rule) Apply(text string) string {
	if r.Scope == ScopeAll {
		return r.Pattern.ReplaceAllString(text, r.Replacement)
	}
	loc := r.Pattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return text
	}
	expanded := r.Pattern.ExpandString(nil, r.Replacement, text, loc)
	return text[:loc[0]] + string(expanded) + text[loc[1]:]
}

// =============================================================================
// PIPELINE
// =============================================================================

func all(stage Stage, pattern, replacement string) Rule {
	return Rule{Stage: stage, Pattern: regexp.MustCompile(pattern), Replacement: replacement, Scope: ScopeAll}
}

func first(stage Stage, pattern, replacement string) Rule {
	return Rule{Stage: stage, Pattern: regexp.MustCompile(pattern), Replacement: replacement, Scope: ScopeFirst}
}

// command builds a rule replacing a literal LaTeX token everywhere.
func command(token, symbol string) Rule {
	return all(StageCommands, regexp.QuoteMeta(token), symbol)
}

// space matches one whitespace character, including vertical tab, no-break
// space and the other Unicode space separators. RE2's \s is ASCII only.
const space = `[\s\v\x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]`

var pipeline = []Rule{
	// Display and inline math wrappers
	all(StageDelimiters, `\\\[(?s:(.*?))\\\]`, "${1}"),
	all(StageDelimiters, `\\\((?s:(.*?))\\\)`, "${1}"),
	all(StageDelimiters, `\$\$(?s:(.*?))\$\$`, "${1}"),
	all(StageDelimiters, `\$([^$\n]+)\$`, "${1}"),

	all(StageLineBreaks, `\\\\`, "\n"),

	// Nested braces are left alone
	all(StageStructures, `\\frac`+space+`*\{([^{}]+)\}`+space+`*\{([^{}]+)\}`, "${1}/${2}"),
	all(StageStructures, `\\sqrt`+space+`*\{([^{}]+)\}`, "√${1}"),

	command(`\times`, "×"),
	command(`\cdot`, "·"),
	command(`\div`, "÷"),
	command(`\leq`, "≤"),
	command(`\geq`, "≥"),
	command(`\neq`, "≠"),
	command(`\approx`, "≈"),
	command(`\pm`, "±"),
	command(`\infty`, "∞"),
	command(`\pi`, "π"),
	command(`\theta`, "θ"),
	command(`\delta`, "∆"),
	command(`\sum`, "∑"),
	command(`\int`, "∫"),
	command(`\partial`, "∂"),
	command(`\{`, "{"),
	command(`\}`, "}"),
	command(`\,`, " "),
	command(`\;`, " "),
	command(`\:`, " "),
	command(`\!`, ""),

	first(StageWords, `(?i)\bpi\b`, "π"),
	first(StageWords, `(?i)\btheta\b`, "θ"),
	first(StageWords, `(?i)\bdelta\b`, "∆"),
	first(StageWords, `(?i)\binfty\b`, "∞"),
	first(StageWords, `(?i)\binfinity\b`, "∞"),
	first(StageWords, `(?i)\bsum\b`, "∑"),
	first(StageWords, `(?i)\bintegral\b`, "∫"),
	first(StageWords, `(?i)\bpartial\b`, "∂"),
	first(StageWords, `(?i)\bdeg\b`, "°"),
	first(StageWords, `!=`, "≠"),
	first(StageWords, `>=`, "≥"),
	first(StageWords, `<=`, "≤"),
	first(StageWords, `\+/-`, "±"),
	first(StageWords, `(?i)\bsqrt`+space+`*\(`, "√("),

	all(StageOperators, `([0-9A-Za-z)\]])`+space+`*\*`+space+`*([0-9A-Za-z(\[])`, "${1} × ${2}"),
	all(StageOperators, `([0-9A-Za-z)\]])`+space+`*/`+space+`*([0-9A-Za-z(\[])`, "${1} ÷ ${2}"),
}

// Rules returns a copy of the normalization pipeline in execution order.
func Rules() []Rule {
	out := make([]Rule, len(pipeline))
	copy(out, pipeline)
	return out
}

// Apply runs rules in order over text.
func Apply(rules []Rule, text string) string {
	for _, r := range rules {
		text = r.Apply(text)
	}
	return text
}

// Normalize converts math notation in text to Unicode symbols.
// It never fails; text without math passes through unchanged.
func Normalize(text string) string {
	if text == "" {
		return text
	}
	return Apply(pipeline, text)
}

// NormalizeThrough runs only the stages up to and including last.
func NormalizeThrough(text string, last Stage) string {
	if text == "" {
		return text
	}
	for _, r := range pipeline {
		if r.Stage > last {
			break
		}
		text = r.Apply(text)
	}
	return text
}
