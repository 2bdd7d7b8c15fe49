package phrase

import (
	"slices"
	"testing"
)

func TestScanTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"no tokens", nil},
		{"{a} and {$b}", []string{"{a}", "{$b}"}},
		{"{a}s_ rest", []string{"{a}s_"}},
		{"{a}{b}", []string{"{a}", "{b}"}},
		{`\{a} {b\}`, nil},
		{"{} {|x} {ok}", []string{"{ok}"}},
		{"x!{$req}.", []string{"!{$req}."}},
		{"{unclosed", nil},
	}

	for _, tt := range tests {
		var got []string
		for _, tok := range scanTokens(tt.in) {
			got = append(got, tok.Match)
		}

		if !slices.Equal(got, tt.want) {
			t.Errorf("scanTokens(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatchToken(t *testing.T) {
	s := "Hi !{$user.name=guest=x|join:, |plural:$n}s_!"

	tok, end, ok := matchToken(s, 4, 0)
	if !ok {
		t.Fatal("token not matched")
	}

	if end != len(s) {
		t.Errorf("end = %d, want %d", end, len(s))
	}

	if !tok.Mandatory || tok.Index != 3 {
		t.Errorf("Mandatory = %v, Index = %d", tok.Mandatory, tok.Index)
	}

	if tok.Variable != "$user.name" || tok.Literal() {
		t.Errorf("Variable = %q", tok.Variable)
	}

	if tok.Default == nil || *tok.Default != "guest" {
		t.Errorf("Default = %v", tok.Default)
	}

	want := []Call{{Name: "join", Args: []string{", "}}, {Name: "plural", Args: []string{"$n"}}}
	if !slices.EqualFunc(tok.Modifiers, want, func(a, b Call) bool {
		return a.Name == b.Name && slices.Equal(a.Args, b.Args)
	}) {
		t.Errorf("Modifiers = %+v", tok.Modifiers)
	}

	if string(tok.Shorthands) != "s_!" {
		t.Errorf("Shorthands = %q", string(tok.Shorthands))
	}

	// A '!' before the scan position does not mark the token.
	if tok, _, _ := matchToken("!{a}", 1, 1); tok.Mandatory {
		t.Error("token marked mandatory by a consumed '!'")
	}
}

func TestSegmentPhrase(t *testing.T) {
	segs := segmentPhrase("a {b} c{d}")

	var got []string
	for _, s := range segs {
		if s.token != nil {
			got = append(got, "<"+s.token.Variable+">")
		} else {
			got = append(got, s.text)
		}
	}

	if want := []string{"a ", "<b>", " c", "<d>"}; !slices.Equal(got, want) {
		t.Errorf("segmentPhrase() = %q, want %q", got, want)
	}

	if segs := segmentPhrase(""); len(segs) != 1 || segs[0].text != "" {
		t.Errorf("segmentPhrase(\"\") = %+v", segs)
	}
}

func TestScanConditionals(t *testing.T) {
	tests := []struct {
		in   string
		want []conditional
	}{
		{
			in: "x ?{$a}{yes} y",
			want: []conditional{{
				span: span{2, 12}, match: "?{$a}{yes}",
				condition: "$a", then: "{yes}",
			}},
		},
		{
			in: "?{$a|eq:1&gt:0}{yes}{no}!",
			want: []conditional{{
				span: span{0, 24}, match: "?{$a|eq:1&gt:0}{yes}{no}",
				condition: "$a", chain: "eq:1&gt:0", then: "{yes}", otherwise: "{no}",
			}},
		},
		{in: "?{}{yes}", want: nil},
		{in: "?{$a}{}", want: nil},
		{in: "?{$a} {yes}", want: nil},
	}

	for _, tt := range tests {
		if got := scanConditionals(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("scanConditionals(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseChain(t *testing.T) {
	got := parseChain("includes:a&includes:b|eq:c")
	want := []predicate{
		{name: "includes", args: []string{"a"}},
		{and: true, name: "includes", args: []string{"b"}},
		{name: "eq", args: []string{"c"}},
	}

	if !slices.EqualFunc(got, want, func(a, b predicate) bool {
		return a.and == b.and && a.name == b.name && slices.Equal(a.args, b.args)
	}) {
		t.Errorf("parseChain() = %+v, want %+v", got, want)
	}

	if got := parseChain(""); len(got) != 0 {
		t.Errorf("parseChain(\"\") = %+v", got)
	}
}

func TestScanDelimited(t *testing.T) {
	tests := []struct {
		in   string
		want []span
	}{
		{"[a|b]", []span{{0, 5}}},
		{"x [a] [b]", []span{{2, 5}, {6, 9}}},
		{`\[a] [b\]`, nil},
		{"[] [a]", []span{{3, 6}}},
		{"#open", nil},
	}

	for _, tt := range tests {
		open, closing := byte('['), byte(']')
		if tt.in[0] == '#' {
			open, closing = '#', '#'
		}

		if got := scanDelimited(tt.in, open, closing); !slices.Equal(got, tt.want) {
			t.Errorf("scanDelimited(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSplitUnescaped(t *testing.T) {
	got := splitUnescaped(`a|b\|c||d`, '|')
	if want := []string{"a", "b|c", "", "d"}; !slices.Equal(got, want) {
		t.Errorf("splitUnescaped() = %q, want %q", got, want)
	}
}

func TestLookup(t *testing.T) {
	vars := map[string]any{
		"user": map[string]any{"name": "Ana", "tags": []string{"x", "y"}},
		"nil":  nil,
		"n":    3,
	}

	tests := []struct {
		path string
		want any
		ok   bool
	}{
		{"user.name", "Ana", true},
		{"user.tags.1", "y", true},
		{"user.tags.2", nil, false},
		{"user.missing", nil, false},
		{"nil", nil, true},
		{"n.x", nil, false},
	}

	for _, tt := range tests {
		got, ok := lookup(vars, tt.path)
		if ok != tt.ok || got != tt.want {
			t.Errorf("lookup(%q) = %v, %v; want %v, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSubstitute(t *testing.T) {
	vars := map[string]any{
		"a":    "one",
		"obj":  map[string]any{"b": 2},
		"list": []string{"x"},
		"ref":  "$a",
		"pipe": "x|y",
	}

	tests := []struct{ in, want string }{
		{"no vars", "no vars"},
		{"$a and $obj.b.", "one and 2."},
		{"$missing stays", "$missing stays"},
		{"$list stays", "$list stays"},
		{"$obj stays", "$obj stays"},
		{"cost $5", "cost $5"},
		{"$", "$"},
		{"$ref", "$a"},
		{"{$pipe}", "{x|y}"},
	}

	for _, tt := range tests {
		if got := substitute(tt.in, vars); got != tt.want {
			t.Errorf("substitute(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
