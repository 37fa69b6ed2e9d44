// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNativeEncode(t *testing.T) {
	doc := NewParser().Parse("# Hi\n\n- [x] done\n")
	want := `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[` +
		`{"t":"Header","c":[1,["",[],[]],[{"t":"Str","c":"Hi"}]]},` +
		`{"t":"BulletList","c":[[{"t":"Plain","c":[{"t":"Str","c":"☒"},{"t":"Space"},{"t":"Str","c":"done"}]}]]}` +
		`]}` + "\n"
	assert.Equal(t, want, ToNative(doc))
}

var nativeInlineTests = []struct {
	md   string
	want string
}{
	{"`x`", `{"t":"Code","c":[["",[],[]],"x"]}`},
	{"a  \nb", `{"t":"Str","c":"a"},{"t":"LineBreak"},{"t":"Str","c":"b"}`},
	{"a\nb", `{"t":"Str","c":"a"},{"t":"SoftBreak"},{"t":"Str","c":"b"}`},
	{"~~x~~", `{"t":"Strikeout","c":[{"t":"Str","c":"x"}]}`},
	{`[a](/u "t")`, `{"t":"Link","c":[["",[],[]],[{"t":"Str","c":"a"}],["/u","t"]]}`},
	{`![a b](/i.png)`, `{"t":"Image","c":[["",[],[]],[{"t":"Str","c":"a"},{"t":"Space"},{"t":"Str","c":"b"}],["/i.png",""]]}`},
	{"<https://go.dev>", `{"t":"Link","c":[["",["uri"],[]],[{"t":"Str","c":"https://go.dev"}],["https://go.dev",""]]}`},
	{"www.go.dev", `{"t":"Link","c":[["",["uri"],[]],[{"t":"Str","c":"www.go.dev"}],["https://www.go.dev",""]]}`},
	{"me@go.dev", `{"t":"Link","c":[["",["email"],[]],[{"t":"Str","c":"me@go.dev"}],["mailto:me@go.dev",""]]}`},
	{"@gopher", `{"t":"Span","c":[["",["user-mention"],[]],[{"t":"Str","c":"@gopher"}]]}`},
	{"#42", `{"t":"Span","c":[["",["issue"],[]],[{"t":"Str","c":"#42"}]]}`},
	{":tada:", `{"t":"Span","c":[["",["emoji"],[["data-emoji","tada"]]],[{"t":"Str","c":"🎉"}]]}`},
	{`\*`, `{"t":"Span","c":[["",["escaped"],[]],[{"t":"Str","c":"*"}]]}`},
}

func TestNativeInlines(t *testing.T) {
	for _, tt := range nativeInlineTests {
		doc := NewParser().Parse(tt.md)
		want := `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[{"t":"Para","c":[` + tt.want + `]}]}` + "\n"
		assert.Equal(t, want, ToNative(doc), "input %q", tt.md)
	}
}

func TestNativeBlocks(t *testing.T) {
	doc := NewParser().Parse("```go\nx\n```\n\n2) a\n\n   b\n\n***\n\n| h |\n|--:|\n| c |\n")
	want := `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[` +
		`{"t":"CodeBlock","c":[["",["go"],[]],"x"]},` +
		`{"t":"OrderedList","c":[[2,{"t":"Decimal"},{"t":"OneParen"}],[[{"t":"Para","c":[{"t":"Str","c":"a"}]},{"t":"Para","c":[{"t":"Str","c":"b"}]}]]]},` +
		`{"t":"HorizontalRule"},` +
		`{"t":"Table","c":[["",[],[]],[null,[]],[[{"t":"AlignRight"},{"t":"ColWidthDefault"}]],` +
		`[["",[],[]],[[["",[],[]],[[["",[],[]],{"t":"AlignDefault"},1,1,[{"t":"Plain","c":[{"t":"Str","c":"h"}]}]]]]]],` +
		`[[["",[],[]],0,[],[[["",[],[]],[[["",[],[]],{"t":"AlignDefault"},1,1,[{"t":"Plain","c":[{"t":"Str","c":"c"}]}]]]]]]],` +
		`[["",[],[]],[]]]}` +
		`]}` + "\n"
	assert.Equal(t, want, ToNative(doc))
}

func TestNativeIndent(t *testing.T) {
	out, err := Render("native", NewParser().Parse("x"), &RenderOptions{Indent: true})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{\n  \"pandoc-api-version\": [\n"), "indented output:\n%s", out)
}

func TestNativeGuessLanguage(t *testing.T) {
	doc := NewParser().Parse("    package main\n")
	out, err := Render("native", doc, &RenderOptions{GuessLanguage: func(string) string { return "go" }})
	require.NoError(t, err)
	assert.Contains(t, out, `{"t":"CodeBlock","c":[["",["go"],[]],"package main"]}`)
}

// TestNativeRoundTrip checks that every testdata input survives
// a trip through the native format.
func TestNativeRoundTrip(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	require.NoError(t, err)
	for _, file := range files {
		p, cases := readTestCases(t, file)
		for _, tc := range cases {
			js := ToNative(p.Parse(tc.md))
			doc, err := ParseNative([]byte(js))
			require.NoError(t, err, "%s: %s", file, tc.name)
			assert.Equal(t, js, ToNative(doc), "%s: %s", file, tc.name)
		}
	}
}

func TestNativeDecodeTask(t *testing.T) {
	in := `{"blocks":[{"t":"BulletList","c":[
		[{"t":"Plain","c":[{"t":"Str","c":"☐"},{"t":"Space"},{"t":"Str","c":"open"}]}],
		[{"t":"Plain","c":[{"t":"Str","c":"☒"}]},{"t":"CodeBlock","c":[["",[],[]],"x"]}],
		[{"t":"Plain","c":[{"t":"Str","c":"☐x"}]}]
	]}]}`
	doc, err := ParseNative([]byte(in))
	require.NoError(t, err)
	want := &Document{Blocks: []Block{
		&BulletList{Items: []*ListItem{
			{Task: TaskUnchecked, Blocks: []Block{&Paragraph{Inlines: Inlines{&Text{"open"}}}}},
			{Task: TaskChecked, Blocks: []Block{&CodeBlock{Text: "x"}}},
			{Blocks: []Block{&Paragraph{Inlines: Inlines{&Text{"☐x"}}}}},
		}},
	}}
	assert.Equal(t, want, doc)
}

func TestNativeDecodeDegrade(t *testing.T) {
	in := `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[
		{"t":"Div","c":[["",[],[]],[{"t":"Plain","c":[{"t":"Str","c":"a"}]}]]},
		{"t":"LineBlock","c":[[{"t":"Str","c":"l1"}],[{"t":"Str","c":"l2"}]]},
		{"t":"RawBlock","c":["html","<b>x</b>\n"]},
		{"t":"Para","c":[
			{"t":"Underline","c":[{"t":"Str","c":"u"}]},
			{"t":"Space"},
			{"t":"Quoted","c":[{"t":"DoubleQuote"},[{"t":"Str","c":"q"}]]},
			{"t":"Space"},
			{"t":"Math","c":[{"t":"InlineMath"},"x^2"]},
			{"t":"Note","c":[]}
		]},
		{"t":"Header","c":[9,["",[],[]],[{"t":"Str","c":"deep"}]]},
		{"t":"DefinitionList","c":[[[{"t":"Str","c":"term"}],[[{"t":"Plain","c":[{"t":"Str","c":"def"}]}]]]]}
	]}`
	doc, err := ParseNative([]byte(in))
	require.NoError(t, err)
	want := &Document{Blocks: []Block{
		&Paragraph{Inlines: Inlines{&Text{"a"}}},
		&Paragraph{Inlines: Inlines{&Text{"l1"}, &HardBreak{}, &Text{"l2"}}},
		&CodeBlock{Lang: "html", Text: "<b>x</b>"},
		&Paragraph{Inlines: Inlines{&Text{"u “q” "}, &CodeSpan{"x^2"}}},
		&Header{Level: 6, Inlines: Inlines{&Text{"deep"}}},
		&BulletList{Loose: true, Items: []*ListItem{
			{Blocks: []Block{
				&Paragraph{Inlines: Inlines{&Text{"term"}}},
				&Paragraph{Inlines: Inlines{&Text{"def"}}},
			}},
		}},
	}}
	assert.Equal(t, want, doc)
}

func TestNativeDecodeIssue(t *testing.T) {
	span := func(text string) string {
		return `{"t":"Span","c":[["",["issue"],[]],[{"t":"Str","c":"` + text + `"}]]}`
	}
	in := `{"blocks":[{"t":"Para","c":[` + span("#42") + `,{"t":"Space"},` + span("#007") + `]}]}`
	doc, err := ParseNative([]byte(in))
	require.NoError(t, err)
	want := &Document{Blocks: []Block{
		&Paragraph{Inlines: Inlines{&IssueReference{Number: 42}, &Text{" #007"}}},
	}}
	assert.Equal(t, want, doc)
}

var nativeErrorTests = []struct {
	in   string
	path string
	msg  string
}{
	{`not json`, "$", "invalid character"},
	{`{"meta":{}}`, "$", "missing blocks"},
	{`{"blocks":{}}`, "$.blocks", "expected array"},
	{`{"blocks":[{"t":"Bogus"}]}`, "$.blocks[0]", `unknown block type "Bogus"`},
	{`{"blocks":[{"c":[]}]}`, "$.blocks[0]", "missing element tag"},
	{`{"blocks":[{"t":"Para","c":[{"t":"Str","c":5}]}]}`, "$.blocks[0].c[0].c", "expected string, found number"},
	{`{"blocks":[{"t":"Para","c":[{"t":"Emph","c":[{"t":"Wat"}]}]}]}`, "$.blocks[0].c[0].c[0]", `unknown inline type "Wat"`},
	{`{"blocks":[{"t":"Header","c":[1,["",[],[]]]}]}`, "$.blocks[0].c", "expected 3 elements, found 2"},
	{`{"blocks":[{"t":"BlockQuote","c":[{"t":"Para","c":[]},{"t":"CodeBlock","c":[["",[],[]],1]}]}]}`, "$.blocks[0].c[1].c[1]", "expected string"},
}

func TestNativeErrors(t *testing.T) {
	for _, tt := range nativeErrorTests {
		doc, err := ParseNative([]byte(tt.in))
		assert.Nil(t, doc, "input %s", tt.in)
		require.Error(t, err, "input %s", tt.in)
		assert.True(t, errors.Is(err, ErrStructure), "input %s: %v does not match ErrStructure", tt.in, err)

		var pe *ParseError
		require.True(t, errors.As(err, &pe), "input %s: %T", tt.in, err)
		assert.Equal(t, tt.path, pe.Path, "input %s", tt.in)
		assert.Contains(t, pe.Err.Error(), tt.msg, "input %s", tt.in)
	}
}
