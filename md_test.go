// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import (
	"bytes"
	"flag"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/tools/txtar"
)

var goldmarkFlag = flag.Bool("goldmark", false, "run goldmark tests")

// A testCase is one input from a testdata file
// together with its expected outputs, keyed by writer name.
type testCase struct {
	name string
	md   string
	want []txtar.File
}

// readTestCases reads the txtar file, which holds a sequence of
// name.md inputs, each followed by one or more name.FORMAT outputs.
func readTestCases(t testing.TB, file string) (*Parser, []testCase) {
	a, err := txtar.ParseFile(file)
	if err != nil {
		t.Fatal(err)
	}
	p := NewParser()
	if err := setParserOptions(p, a.Comment); err != nil {
		t.Fatal(err)
	}
	var cases []testCase
	for _, f := range a.Files {
		name, ext := strings.TrimSuffix(f.Name, path.Ext(f.Name)), path.Ext(f.Name)
		if ext == ".md" {
			cases = append(cases, testCase{name: name, md: decode(string(f.Data))})
			continue
		}
		if len(cases) == 0 || cases[len(cases)-1].name != name {
			t.Fatalf("%s: output %s does not follow %s.md", file, f.Name, name)
		}
		c := &cases[len(cases)-1]
		c.want = append(c.want, f)
	}
	return p, cases
}

func Test(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txt"), func(t *testing.T) {
			p, cases := readTestCases(t, file)
			var ncase, npass int
			for _, tc := range cases {
				doc := p.Parse(tc.md)
				for _, want := range tc.want {
					format := strings.TrimPrefix(path.Ext(want.Name), ".")
					ncase++
					t.Run(want.Name, func(t *testing.T) {
						out, err := Render(format, doc, nil)
						if err != nil {
							t.Fatal(err)
						}
						if have := encode(out); have != string(want.Data) {
							t.Fatalf("input %q\nparse:\n%s\nhave %q\nwant %q\ndingus: (https://spec.commonmark.org/dingus/?text=%s)", tc.md, dump(doc), have, want.Data, strings.ReplaceAll(url.QueryEscape(tc.md), "+", "%20"))
						}
						npass++
					})
					if *goldmarkFlag && format == "html" {
						t.Run("goldmark/"+want.Name, func(t *testing.T) {
							testGoldmark(t, tc.md, string(want.Data))
						})
					}
				}
			}
			t.Logf("%d/%d pass", npass, ncase)
		})
	}
}

// testGoldmark checks that goldmark's GFM renderer agrees with want.
// Raw HTML is not passed through by this package, so disagreements
// on inputs containing tags are expected.
func testGoldmark(t *testing.T, md, want string) {
	gm := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(ghtml.WithXHTML()),
	)
	var buf bytes.Buffer
	if err := gm.Convert([]byte(md), &buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() > 0 && buf.Bytes()[buf.Len()-1] != '\n' {
		buf.WriteByte('\n')
	}
	if out := encode(buf.String()); out != want {
		t.Fatalf("\n    - input: ``%q``\n    - output: ``%q``\n    - golden: ``%q``", md, out, want)
	}
}

func decode(s string) string {
	s = strings.ReplaceAll(s, "^J\n", "\n")
	s = strings.ReplaceAll(s, "^M", "\r")
	s = strings.ReplaceAll(s, "^D\n", "")
	s = strings.ReplaceAll(s, "^@", "\x00")
	return s
}

func encode(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "^M\n")
	s = strings.ReplaceAll(s, "\r", "^M^D\n")
	s = strings.ReplaceAll(s, " \n", " ^J\n")
	s = strings.ReplaceAll(s, "\t\n", "\t^J\n")
	s = strings.ReplaceAll(s, "\x00", "^@")
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "^D\n"
	}
	return s
}

// setParserOptions extracts lines of the form
//
//	key: value
//
// from data and sets the corresponding options on the Parser.
func setParserOptions(p *Parser, data []byte) error {
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "//") {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("option %s: %v", key, err)
		}
		switch key {
		case "Table":
			p.Table = b
		case "Strikethrough":
			p.Strikethrough = b
		case "TaskList":
			p.TaskList = b
		case "AutoLinkText":
			p.AutoLinkText = b
		case "Emoji":
			p.Emoji = b
		case "Mentions":
			p.Mentions = b
		default:
			return fmt.Errorf("unknown option: %q", key)
		}
	}
	return nil
}

// dump returns the native form of doc, for test failure messages.
func dump(doc *Document) string {
	out, err := encodeNative(doc, &RenderOptions{Indent: true})
	if err != nil {
		return err.Error()
	}
	return out
}
