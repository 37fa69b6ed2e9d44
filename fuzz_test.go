// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import (
	"path/filepath"
	"testing"
	"unicode/utf8"
)

func addTestdataSeeds(f *testing.F) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		f.Fatal(err)
	}
	for _, file := range files {
		_, cases := readTestCases(f, file)
		for _, tc := range cases {
			f.Add(tc.md)
		}
	}
}

// Fuzz checks that any input parses, renders in every format,
// and survives a trip through the native format unchanged.
func Fuzz(f *testing.F) {
	addTestdataSeeds(f)
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}
		doc := NewParser().Parse(s)
		for _, w := range Writers() {
			if _, err := Render(w, doc, nil); err != nil {
				t.Fatalf("Render(%s): %v", w, err)
			}
		}

		js := ToNative(doc)
		back, err := ParseNative([]byte(js))
		if err != nil {
			t.Fatalf("in: %q\nParseNative: %v\njson: %s", s, err, js)
		}
		if js2 := ToNative(back); js2 != js {
			t.Fatalf("in: %q\nnative round trip changed document:\nhave %s\nwant %s", s, js2, js)
		}
	})
}
