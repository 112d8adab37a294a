// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mathfmt

import (
	"regexp"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain text", "hello there", "hello there"},
		{"inline dollars", "$x^2$", "x^2"},
		{"display dollars span lines", "$$\na\n$$", "\na\n"},
		{"single dollar does not cross newline", "$a\nb$", "$a\nb$"},
		{"bracket display", `\[x + y\]`, "x + y"},
		{"paren inline", `\(a\)`, "a"},
		{"line break command", `a \\ b`, "a \n b"},
		{"sqrt", `\sqrt{9}`, "√9"},
		{"nested sqrt left alone", `\sqrt{{x}}`, `\sqrt{{x}}`},
		{"times command", `\alpha \times \beta`, `\alpha × \beta`},
		{"leq command", `x \leq y`, "x ≤ y"},
		{"pi command", `\pi r^2`, "π r^2"},
		{"infty before int", `\int_0^\infty`, "∫_0^∞"},
		{"thin space", `a\,b`, "a b"},
		{"negative space removed", `a\!b`, "ab"},
		{"escaped braces", `\{1, 2\}`, "{1, 2}"},
		{"first pi only", "pi plus pi", "π plus pi"},
		{"case insensitive words", "PI and Theta", "π and θ"},
		{"word boundary respected", "spin the pie", "spin the pie"},
		{"not equal first only", "x != y != z", "x ≠ y != z"},
		{"comparisons", "a >= b and c <= d", "a ≥ b and c ≤ d"},
		{"plus minus", "+/- 3", "± 3"},
		{"sqrt call", "sqrt(4)", "√(4)"},
		{"degrees", "90 deg", "90 °"},
		{"star between numbers", "3*4", "3 × 4"},
		{"star with spaces", "3 * x", "3 × x"},
		{"slash between letters", "a/b", "a ÷ b"},
		{"brackets flank star", "(a+b)*(c)", "(a+b) × (c)"},
		{"matches do not overlap", "a * b * c", "a × b * c"},
		{"url untouched", "http://x", "http://x"},
		// The structures stage yields "1/2" (see NormalizeThrough); the
		// operator stage then divides it.
		{"frac becomes division", `\frac{1}{2}`, "1 ÷ 2"},
		{"no-break space around star", "3\u00a0*\u00a04", "3 × 4"},
		{"vertical tab around slash", "a\v/\vb", "a ÷ b"},
		{"no-break space after frac", "\\frac\u00a0{1}{2}", "1 ÷ 2"},
		{"prefix kept", "Harold: $\\frac{3}{4}$ of pi", "Harold: 3 ÷ 4 of π"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_NotIdempotentForWords(t *testing.T) {
	once := Normalize("pi plus pi")
	twice := Normalize(once)
	if once == twice {
		t.Fatalf("expected second pass to convert the remaining word, got %q both times", once)
	}
	if twice != "π plus π" {
		t.Errorf("second pass = %q, want %q", twice, "π plus π")
	}
}

func TestNormalizeThrough(t *testing.T) {
	tests := []struct {
		in   string
		last Stage
		want string
	}{
		{`\frac{1}{2}`, StageStructures, "1/2"},
		{`\frac {a} {b}`, StageStructures, "a/b"},
		{`\frac{\frac{1}{2}}{3}`, StageStructures, `\frac{1/2}{3}`},
		{`$\sqrt{9}$`, StageDelimiters, `\sqrt{9}`},
		{"3*4", StageWords, "3*4"},
	}
	for _, tt := range tests {
		if got := NormalizeThrough(tt.in, tt.last); got != tt.want {
			t.Errorf("NormalizeThrough(%q, %d) = %q, want %q", tt.in, tt.last, got, tt.want)
		}
	}
}

func TestRule_ScopeFirst(t *testing.T) {
	r := Rule{Pattern: regexp.MustCompile(`a(\d)`), Replacement: "<${1}>", Scope: ScopeFirst}
	if got := r.Apply("a1 a2 a3"); got != "<1> a2 a3" {
		t.Errorf("first-only Apply = %q", got)
	}
	if got := r.Apply("none"); got != "none" {
		t.Errorf("no-match Apply = %q", got)
	}

	r.Scope = ScopeAll
	if got := r.Apply("a1 a2 a3"); got != "<1> <2> <3>" {
		t.Errorf("all Apply = %q", got)
	}
}

func TestRules_OrderedAndCopied(t *testing.T) {
	rules := Rules()
	if len(rules) == 0 {
		t.Fatal("empty pipeline")
	}
	for i := 1; i < len(rules); i++ {
		if rules[i].Stage < rules[i-1].Stage {
			t.Fatalf("rule %d stage %d runs after stage %d", i, rules[i].Stage, rules[i-1].Stage)
		}
	}

	rules[0] = Rule{}
	if Rules()[0].Pattern == nil {
		t.Error("Rules() must return a copy")
	}

	for _, r := range Rules() {
		if r.Stage == StageWords && r.Scope != ScopeFirst {
			t.Errorf("word rule %s must replace only the first match", r.Pattern)
		}
	}
}

func TestApply_MatchesNormalize(t *testing.T) {
	in := `\[\frac{x}{2} \cdot \pi\] != 0`
	if Apply(Rules(), in) != Normalize(in) {
		t.Error("Apply(Rules()) should match Normalize")
	}
}
