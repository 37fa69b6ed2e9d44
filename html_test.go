// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import (
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const htmlTestInput = "# Release *notes*\n" +
	"\n" +
	"Thanks @gopher for #7 :rocket: and <script>alert(1)</script>.\n" +
	"\n" +
	"- [x] parse\n" +
	"- [ ] render\n" +
	"\n" +
	"```go\n" +
	"if a < b {}\n" +
	"```\n" +
	"\n" +
	"| name | n |\n" +
	"|:----:|--:|\n" +
	"| x    | 1 |\n" +
	"\n" +
	"See www.go.dev and [the \"doc\"](/doc?a=1&b=2 \"T&C\").\n"

func parseHTMLOutput(t *testing.T, opts *RenderOptions) *html.Node {
	out, err := Convert("gfm", "html", []byte(htmlTestInput), opts)
	require.NoError(t, err)
	root, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)
	return root
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attrOf(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func queryAll(root *html.Node, sel string) []*html.Node {
	return cascadia.MustCompile(sel).MatchAll(root)
}

func TestHTMLStructure(t *testing.T) {
	root := parseHTMLOutput(t, nil)

	h1 := queryAll(root, "h1")
	require.Len(t, h1, 1)
	assert.Equal(t, "Release notes", textContent(h1[0]))
	assert.Len(t, queryAll(root, "h1 > em"), 1)

	mentions := queryAll(root, "p > span.user-mention")
	require.Len(t, mentions, 1)
	assert.Equal(t, "@gopher", textContent(mentions[0]))
	issues := queryAll(root, "p > span.issue")
	require.Len(t, issues, 1)
	assert.Equal(t, "#7", textContent(issues[0]))
	assert.Contains(t, textContent(queryAll(root, "p")[0]), "🚀")

	assert.Empty(t, queryAll(root, "script"), "raw HTML must be escaped")
	assert.Contains(t, textContent(queryAll(root, "p")[0]), "<script>alert(1)</script>")

	boxes := queryAll(root, "ul > li > input[type=checkbox][disabled]")
	require.Len(t, boxes, 2)
	assert.Len(t, queryAll(root, "ul > li > input[checked]"), 1)

	code := queryAll(root, "pre > code.language-go")
	require.Len(t, code, 1)
	assert.Equal(t, "if a < b {}\n", textContent(code[0]))

	assert.Len(t, queryAll(root, `th[align="center"]`), 1)
	assert.Len(t, queryAll(root, `td[align="right"]`), 1)
	assert.Len(t, queryAll(root, "tbody > tr"), 1)

	auto := queryAll(root, `a[href="https://www.go.dev"]`)
	require.Len(t, auto, 1)
	assert.Equal(t, "www.go.dev", textContent(auto[0]))

	links := queryAll(root, `a[href^="/doc"]`)
	require.Len(t, links, 1)
	assert.Equal(t, "/doc?a=1&b=2", attrOf(links[0], "href"))
	assert.Equal(t, "T&C", attrOf(links[0], "title"))
	assert.Equal(t, `the "doc"`, textContent(links[0]))
}

func TestHTMLStandalone(t *testing.T) {
	root := parseHTMLOutput(t, &RenderOptions{Standalone: true})
	title := queryAll(root, "head > title")
	require.Len(t, title, 1)
	assert.Equal(t, "Release notes", textContent(title[0]))
	assert.Len(t, queryAll(root, "head > meta[charset]"), 1)
	assert.Len(t, queryAll(root, "body > h1"), 1)

	frag, err := Convert("gfm", "html", []byte(htmlTestInput), nil)
	require.NoError(t, err)
	assert.False(t, strings.Contains(frag, "<html>"), "fragment has page markup")
}

func TestHTMLGuessLanguage(t *testing.T) {
	opts := &RenderOptions{GuessLanguage: func(code string) string {
		if strings.HasPrefix(code, "#!/bin/sh") {
			return "shell"
		}
		return ""
	}}
	out, err := Convert("gfm", "html", []byte("    #!/bin/sh\n    echo hi\n\n```\nplain\n```\n"), opts)
	require.NoError(t, err)
	assert.Equal(t, "<pre><code class=\"language-shell\">#!/bin/sh\necho hi\n</code></pre>\n<pre><code>plain\n</code></pre>\n", out)
}
