// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// The native format is Pandoc's JSON interchange format
// (pandoc-types 1.23): every element is {"t": tag, "c": content}.

// nativeAPIVersion is the pandoc-types version written by the encoder.
var nativeAPIVersion = []int{1, 23, 1}

// Task boxes are written as the first Str of the item,
// the way pandoc's GFM reader does.
const (
	taskUnchecked = "☐"
	taskChecked   = "☒"
)

// A node is a single native element.
type node struct {
	T string `json:"t"`
	C any    `json:"c,omitempty"`
}

type nativeDoc struct {
	APIVersion []int           `json:"pandoc-api-version"`
	Meta       json.RawMessage `json:"meta"`
	Blocks     json.RawMessage `json:"blocks"`
}

// attr returns a native Attr: identifier, classes, and key-value pairs.
func attr(classes []string, kv [][2]string) []any {
	if classes == nil {
		classes = []string{}
	}
	pairs := make([][]string, 0, len(kv))
	for _, p := range kv {
		pairs = append(pairs, []string{p[0], p[1]})
	}
	return []any{"", classes, pairs}
}

func emptyAttr() []any { return attr(nil, nil) }

// span returns a Span with the given classes and attributes holding text.
func span(classes []string, kv [][2]string, text string) node {
	return node{T: "Span", C: []any{attr(classes, kv), (&Text{text}).appendNative([]node{})}}
}

// nativeInlines returns the native form of list. It is never nil,
// so that an empty list encodes as [] and not null.
func nativeInlines(list Inlines) []node {
	out := []node{}
	for _, x := range list {
		out = x.appendNative(out)
	}
	return out
}

// An encoder converts a Document to native nodes.
type encoder struct {
	opts *RenderOptions
}

func (e *encoder) guessLanguage(lang, code string) string {
	if lang == "" && e.opts.GuessLanguage != nil {
		return e.opts.GuessLanguage(code)
	}
	return lang
}

func (e *encoder) blocks(bs []Block) []node {
	out := make([]node, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.native(e))
	}
	return out
}

// item returns the blocks of a list item. Paragraphs in tight lists
// are Plain, and a task box is prepended to the first paragraph
// or, if the item does not start with one, inserted as a Plain of its own.
func (e *encoder) item(item *ListItem, loose bool) []node {
	out := make([]node, 0, len(item.Blocks)+1)
	for _, b := range item.Blocks {
		if para, ok := b.(*Paragraph); ok && !loose {
			out = append(out, para.plain())
			continue
		}
		out = append(out, b.native(e))
	}
	if item.Task == TaskUnset {
		return out
	}
	box := taskUnchecked
	if item.Task == TaskChecked {
		box = taskChecked
	}
	inl := []node{{T: "Str", C: box}}
	if len(out) > 0 && (out[0].T == "Plain" || out[0].T == "Para") {
		if rest := out[0].C.([]node); len(rest) > 0 {
			inl = append(append(inl, node{T: "Space"}), rest...)
		}
		out[0] = node{T: out[0].T, C: inl}
		return out
	}
	return append([]node{{T: "Plain", C: inl}}, out...)
}

// encodeNative returns the native JSON form of doc.
func encodeNative(doc *Document, opts *RenderOptions) (string, error) {
	if opts == nil {
		opts = new(RenderOptions)
	}
	e := &encoder{opts: opts}
	v := struct {
		APIVersion []int          `json:"pandoc-api-version"`
		Meta       map[string]any `json:"meta"`
		Blocks     []node         `json:"blocks"`
	}{nativeAPIVersion, map[string]any{}, e.blocks(doc.Blocks)}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToNative returns the native JSON form of doc.
func ToNative(doc *Document) string {
	s, err := encodeNative(doc, nil)
	if err != nil {
		// Every node holds only strings, numbers, and slices.
		panic(err)
	}
	return s
}

// ParseNative decodes a native JSON document.
// Pandoc constructs with no counterpart in [Document] degrade
// to the closest node; unknown tags and ill-typed content
// are reported as a [*ParseError].
func ParseNative(data []byte) (*Document, error) {
	d := &decoder{path: []string{"$"}}
	var top nativeDoc
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, d.errorf("%v", err)
	}
	if top.Blocks == nil {
		return nil, d.errorf("missing blocks")
	}
	defer d.enter(".blocks")()
	blocks, err := d.blocks(top.Blocks)
	if err != nil {
		return nil, err
	}
	return &Document{Blocks: blocks}, nil
}

// A decoder converts native nodes to a Document,
// tracking the JSON path for error messages.
type decoder struct {
	path []string
}

// enter appends elem to the path and returns a func that removes it.
func (d *decoder) enter(elem string) func() {
	n := len(d.path)
	d.path = append(d.path, elem)
	return func() { d.path = d.path[:n] }
}

func (d *decoder) errorf(format string, args ...any) error {
	return &ParseError{Path: strings.Join(d.path, ""), Err: fmt.Errorf(format, args...)}
}

// unmarshal decodes raw into v, reporting what was expected on failure.
func (d *decoder) unmarshal(raw json.RawMessage, v any, what string) error {
	if err := json.Unmarshal(raw, v); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) {
			return d.errorf("expected %s, found %s", what, te.Value)
		}
		return d.errorf("expected %s: %v", what, err)
	}
	return nil
}

// tuple decodes raw as an array of exactly n elements.
func (d *decoder) tuple(raw json.RawMessage, n int) ([]json.RawMessage, error) {
	var list []json.RawMessage
	if err := d.unmarshal(raw, &list, "array"); err != nil {
		return nil, err
	}
	if len(list) != n {
		return nil, d.errorf("expected %d elements, found %d", n, len(list))
	}
	return list, nil
}

// each calls fn for each element of the array raw, with the path set.
func (d *decoder) each(raw json.RawMessage, fn func(json.RawMessage) error) error {
	var list []json.RawMessage
	if err := d.unmarshal(raw, &list, "array"); err != nil {
		return err
	}
	for i, elem := range list {
		leave := d.enter("[" + strconv.Itoa(i) + "]")
		err := fn(elem)
		leave()
		if err != nil {
			return err
		}
	}
	return nil
}

// node decodes raw as a {"t", "c"} element.
func (d *decoder) node(raw json.RawMessage) (tag string, c json.RawMessage, err error) {
	var n struct {
		T string          `json:"t"`
		C json.RawMessage `json:"c"`
	}
	if err := d.unmarshal(raw, &n, "element"); err != nil {
		return "", nil, err
	}
	if n.T == "" {
		return "", nil, d.errorf("missing element tag")
	}
	return n.T, n.C, nil
}

// at decodes the i'th element of tup with the path set.
func (d *decoder) at(tup []json.RawMessage, i int, fn func(json.RawMessage) error) error {
	defer d.enter("[" + strconv.Itoa(i) + "]")()
	return fn(tup[i])
}

func (d *decoder) blocks(raw json.RawMessage) ([]Block, error) {
	out := []Block{}
	err := d.each(raw, func(elem json.RawMessage) error {
		bs, err := d.block(elem)
		out = append(out, bs...)
		return err
	})
	return out, err
}

// block decodes a single block element.
// Container blocks with no model counterpart yield their children,
// so the result may hold any number of blocks.
func (d *decoder) block(raw json.RawMessage) ([]Block, error) {
	tag, c, err := d.node(raw)
	if err != nil {
		return nil, err
	}
	leave := d.enter(".c")
	defer leave()
	one := func(b Block, err error) ([]Block, error) {
		if err != nil {
			return nil, err
		}
		return []Block{b}, nil
	}

	switch tag {
	case "Plain", "Para":
		return one(d.para(c))

	case "Header":
		tup, err := d.tuple(c, 3)
		if err != nil {
			return nil, err
		}
		h := new(Header)
		if err := d.at(tup, 0, func(r json.RawMessage) error { return d.unmarshal(r, &h.Level, "header level") }); err != nil {
			return nil, err
		}
		h.Level = h.level()
		err = d.at(tup, 2, func(r json.RawMessage) (err error) {
			h.Inlines, err = d.inlines(r)
			return err
		})
		return one(h, err)

	case "CodeBlock":
		tup, err := d.tuple(c, 2)
		if err != nil {
			return nil, err
		}
		cb := new(CodeBlock)
		if err := d.at(tup, 0, func(r json.RawMessage) error {
			classes, _, err := d.attr(r)
			if len(classes) > 0 {
				cb.Lang = classes[0]
			}
			return err
		}); err != nil {
			return nil, err
		}
		err = d.at(tup, 1, func(r json.RawMessage) error { return d.unmarshal(r, &cb.Text, "string") })
		return one(cb, err)

	case "RawBlock":
		tup, err := d.tuple(c, 2)
		if err != nil {
			return nil, err
		}
		cb := new(CodeBlock)
		if err := d.at(tup, 0, func(r json.RawMessage) error { return d.unmarshal(r, &cb.Lang, "format") }); err != nil {
			return nil, err
		}
		err = d.at(tup, 1, func(r json.RawMessage) error { return d.unmarshal(r, &cb.Text, "string") })
		cb.Text = strings.TrimSuffix(cb.Text, "\n")
		return one(cb, err)

	case "BlockQuote":
		q := new(BlockQuote)
		q.Blocks, err = d.blocks(c)
		return one(q, err)

	case "BulletList":
		l := new(BulletList)
		l.Items, l.Loose, err = d.items(c)
		return one(l, err)

	case "OrderedList":
		tup, err := d.tuple(c, 2)
		if err != nil {
			return nil, err
		}
		l := &OrderedList{Start: 1, Delim: '.'}
		if err := d.at(tup, 0, func(r json.RawMessage) error { return d.listAttrs(r, l) }); err != nil {
			return nil, err
		}
		err = d.at(tup, 1, func(r json.RawMessage) (err error) {
			l.Items, l.Loose, err = d.items(r)
			return err
		})
		return one(l, err)

	case "DefinitionList":
		return one(d.definitionList(c))

	case "LineBlock":
		para := new(Paragraph)
		err := d.each(c, func(r json.RawMessage) error {
			line, err := d.inlines(r)
			if len(para.Inlines) > 0 {
				para.Inlines = append(para.Inlines, &HardBreak{})
			}
			para.Inlines = append(para.Inlines, line...)
			return err
		})
		return one(para, err)

	case "HorizontalRule":
		return []Block{&ThematicBreak{}}, nil

	case "Table":
		return one(d.table(c))

	case "Div":
		tup, err := d.tuple(c, 2)
		if err != nil {
			return nil, err
		}
		var bs []Block
		err = d.at(tup, 1, func(r json.RawMessage) (err error) {
			bs, err = d.blocks(r)
			return err
		})
		return bs, err

	case "Figure":
		tup, err := d.tuple(c, 3)
		if err != nil {
			return nil, err
		}
		var bs []Block
		err = d.at(tup, 2, func(r json.RawMessage) (err error) {
			bs, err = d.blocks(r)
			return err
		})
		return bs, err

	case "Null":
		return nil, nil
	}
	leave()
	return nil, d.errorf("unknown block type %q", tag)
}

func (d *decoder) para(c json.RawMessage) (*Paragraph, error) {
	inl, err := d.inlines(c)
	return &Paragraph{Inlines: inl}, err
}

// attr decodes an Attr, returning its classes and key-value pairs.
func (d *decoder) attr(raw json.RawMessage) (classes []string, kv map[string]string, err error) {
	var a []json.RawMessage
	if err := d.unmarshal(raw, &a, "attributes"); err != nil {
		return nil, nil, err
	}
	if len(a) != 3 {
		return nil, nil, d.errorf("expected attributes, found %d elements", len(a))
	}
	if err := d.unmarshal(a[1], &classes, "class list"); err != nil {
		return nil, nil, err
	}
	var pairs [][]string
	if err := d.unmarshal(a[2], &pairs, "attribute list"); err != nil {
		return nil, nil, err
	}
	kv = make(map[string]string)
	for _, p := range pairs {
		if len(p) == 2 {
			kv[p[0]] = p[1]
		}
	}
	return classes, kv, nil
}

// listAttrs decodes OrderedList attributes [start, style, delim] into l.
func (d *decoder) listAttrs(raw json.RawMessage, l *OrderedList) error {
	var a []json.RawMessage
	if err := d.unmarshal(raw, &a, "list attributes"); err != nil {
		return err
	}
	if len(a) != 3 {
		return d.errorf("expected list attributes, found %d elements", len(a))
	}
	if err := d.unmarshal(a[0], &l.Start, "list start"); err != nil {
		return err
	}
	delim, _, err := d.node(a[2])
	if err != nil {
		return err
	}
	if delim == "OneParen" || delim == "TwoParens" {
		l.Delim = ')'
	}
	return nil
}

// items decodes list items, reporting whether the list is loose:
// pandoc writes the paragraphs of tight lists as Plain.
func (d *decoder) items(raw json.RawMessage) ([]*ListItem, bool, error) {
	items := []*ListItem{}
	loose := false
	err := d.each(raw, func(r json.RawMessage) error {
		var elems []json.RawMessage
		if err := d.unmarshal(r, &elems, "list item"); err != nil {
			return err
		}
		for _, e := range elems {
			if tag, _, err := d.node(e); err == nil && tag == "Para" {
				loose = true
			}
		}
		item := new(ListItem)
		var err error
		item.Blocks, err = d.blocks(r)
		if err != nil {
			return err
		}
		item.Task, item.Blocks = taskBox(item.Blocks)
		items = append(items, item)
		return nil
	})
	return items, loose, err
}

// taskBox removes a leading task box from the first paragraph of bs,
// dropping the paragraph if nothing else is left in it.
func taskBox(bs []Block) (TaskState, []Block) {
	if len(bs) == 0 {
		return TaskUnset, bs
	}
	para, ok := bs[0].(*Paragraph)
	if !ok || len(para.Inlines) == 0 {
		return TaskUnset, bs
	}
	t, ok := para.Inlines[0].(*Text)
	if !ok {
		return TaskUnset, bs
	}
	var task TaskState
	var rest string
	switch {
	case t.Text == taskUnchecked || strings.HasPrefix(t.Text, taskUnchecked+" "):
		task, rest = TaskUnchecked, t.Text[len(taskUnchecked):]
	case t.Text == taskChecked || strings.HasPrefix(t.Text, taskChecked+" "):
		task, rest = TaskChecked, t.Text[len(taskChecked):]
	default:
		return TaskUnset, bs
	}
	rest = strings.TrimPrefix(rest, " ")
	inl := para.Inlines[1:]
	if rest != "" {
		inl = append(Inlines{&Text{rest}}, inl...)
	}
	if len(inl) == 0 {
		return task, bs[1:]
	}
	bs[0] = &Paragraph{Position: para.Position, Inlines: inl}
	return task, bs
}

// definitionList decodes a DefinitionList as a loose bullet list
// whose items hold the term followed by its definitions.
func (d *decoder) definitionList(raw json.RawMessage) (Block, error) {
	l := &BulletList{Loose: true}
	err := d.each(raw, func(r json.RawMessage) error {
		tup, err := d.tuple(r, 2)
		if err != nil {
			return err
		}
		item := new(ListItem)
		if err := d.at(tup, 0, func(r json.RawMessage) error {
			term, err := d.inlines(r)
			item.Blocks = append(item.Blocks, &Paragraph{Inlines: term})
			return err
		}); err != nil {
			return err
		}
		err = d.at(tup, 1, func(r json.RawMessage) error {
			return d.each(r, func(r json.RawMessage) error {
				bs, err := d.blocks(r)
				item.Blocks = append(item.Blocks, bs...)
				return err
			})
		})
		l.Items = append(l.Items, item)
		return err
	})
	return l, err
}

// table decodes a Table [attr, caption, colspecs, head, bodies, foot].
// Every row is normalized to the number of column specs.
func (d *decoder) table(raw json.RawMessage) (Block, error) {
	tup, err := d.tuple(raw, 6)
	if err != nil {
		return nil, err
	}
	t := new(Table)
	if err := d.at(tup, 2, func(r json.RawMessage) error {
		return d.each(r, func(r json.RawMessage) error {
			spec, err := d.tuple(r, 2)
			if err != nil {
				return err
			}
			align, _, err := d.node(spec[0])
			if err != nil {
				return err
			}
			t.Align = append(t.Align, decodeAlign(align))
			return nil
		})
	}); err != nil {
		return nil, err
	}
	cols := len(t.Align)

	var rows [][]Inlines
	// head and foot are [attr, rows]
	headFoot := func(r json.RawMessage) error {
		hf, err := d.tuple(r, 2)
		if err != nil {
			return err
		}
		return d.at(hf, 1, func(r json.RawMessage) error {
			rs, err := d.rows(r, cols)
			rows = append(rows, rs...)
			return err
		})
	}
	if err := d.at(tup, 3, headFoot); err != nil {
		return nil, err
	}
	nhead := len(rows)

	// bodies are [attr, row head columns, head rows, body rows]
	if err := d.at(tup, 4, func(r json.RawMessage) error {
		return d.each(r, func(r json.RawMessage) error {
			body, err := d.tuple(r, 4)
			if err != nil {
				return err
			}
			for _, i := range []int{2, 3} {
				if err := d.at(body, i, func(r json.RawMessage) error {
					rs, err := d.rows(r, cols)
					rows = append(rows, rs...)
					return err
				}); err != nil {
					return err
				}
			}
			return nil
		})
	}); err != nil {
		return nil, err
	}
	if err := d.at(tup, 5, headFoot); err != nil {
		return nil, err
	}

	// The model has exactly one header row.
	// Extra head rows become body rows; a missing one is empty.
	if nhead == 0 {
		t.Header = make([]Inlines, cols)
	} else {
		t.Header = rows[0]
		rows = rows[1:]
	}
	t.Rows = append([][]Inlines{}, rows...)
	return t, nil
}

func decodeAlign(tag string) Align {
	switch tag {
	case "AlignLeft":
		return AlignLeft
	case "AlignCenter":
		return AlignCenter
	case "AlignRight":
		return AlignRight
	}
	return AlignNone
}

// rows decodes table rows [attr, cells], each normalized to cols cells.
func (d *decoder) rows(raw json.RawMessage, cols int) ([][]Inlines, error) {
	var rows [][]Inlines
	err := d.each(raw, func(r json.RawMessage) error {
		row, err := d.tuple(r, 2)
		if err != nil {
			return err
		}
		cells := make([]Inlines, cols)
		err = d.at(row, 1, func(r json.RawMessage) error {
			i := 0
			return d.each(r, func(r json.RawMessage) error {
				cell, err := d.tuple(r, 5)
				if err != nil {
					return err
				}
				var inl Inlines
				if err := d.at(cell, 4, func(r json.RawMessage) error {
					bs, err := d.blocks(r)
					inl = flattenBlocks(bs)
					return err
				}); err != nil {
					return err
				}
				if i < cols {
					cells[i] = inl
				}
				i++
				return nil
			})
		})
		rows = append(rows, cells)
		return err
	})
	return rows, err
}

// flattenBlocks returns the inline content of the paragraphs
// and headers in bs, separated by spaces.
func flattenBlocks(bs []Block) Inlines {
	var out Inlines
	for _, b := range bs {
		var inl Inlines
		switch b := b.(type) {
		case *Paragraph:
			inl = b.Inlines
		case *Header:
			inl = b.Inlines
		case *CodeBlock:
			inl = Inlines{&CodeSpan{b.Text}}
		default:
			continue
		}
		if len(out) > 0 {
			out = append(out, &Text{" "})
		}
		out = append(out, inl...)
	}
	return mergeAdjacentText(out)
}

// inlines decodes an inline list. Adjacent Str and Space elements
// (and the text of degraded elements) merge into a single Text.
func (d *decoder) inlines(raw json.RawMessage) (Inlines, error) {
	var out Inlines
	err := d.each(raw, func(r json.RawMessage) error {
		var err error
		out, err = d.inline(out, r)
		return err
	})
	return mergeAdjacentText(out), err
}

// mergeAdjacentText merges each run of Text elements in list.
func mergeAdjacentText(list Inlines) Inlines {
	var out Inlines
	for _, x := range list {
		if t, ok := x.(*Text); ok {
			if t.Text == "" {
				continue
			}
			if n := len(out); n > 0 {
				if prev, ok := out[n-1].(*Text); ok {
					out[n-1] = &Text{prev.Text + t.Text}
					continue
				}
			}
		}
		out = append(out, x)
	}
	return out
}

// inline decodes one inline element and appends its model form to dst.
func (d *decoder) inline(dst Inlines, raw json.RawMessage) (Inlines, error) {
	tag, c, err := d.node(raw)
	if err != nil {
		return dst, err
	}
	leave := d.enter(".c")
	defer leave()
	inner := d.inlines
	str := func(r json.RawMessage) (string, error) {
		var s string
		err := d.unmarshal(r, &s, "string")
		return s, err
	}

	switch tag {
	case "Str":
		s, err := str(c)
		return append(dst, &Text{s}), err
	case "Space":
		return append(dst, &Text{" "}), nil
	case "SoftBreak":
		return append(dst, &SoftBreak{}), nil
	case "LineBreak":
		return append(dst, &HardBreak{}), nil
	case "Emph":
		list, err := inner(c)
		return append(dst, &Emphasis{Inner: list}), err
	case "Strong":
		list, err := inner(c)
		return append(dst, &Strong{Inner: list}), err
	case "Strikeout":
		list, err := inner(c)
		return append(dst, &Strikethrough{Inner: list}), err
	case "Underline", "SmallCaps", "Superscript", "Subscript":
		list, err := inner(c)
		return append(dst, list...), err

	case "Quoted":
		tup, err := d.tuple(c, 2)
		if err != nil {
			return dst, err
		}
		q, _, err := d.node(tup[0])
		if err != nil {
			return dst, err
		}
		open, close := "“", "”"
		if q == "SingleQuote" {
			open, close = "‘", "’"
		}
		var list Inlines
		err = d.at(tup, 1, func(r json.RawMessage) (err error) {
			list, err = d.inlines(r)
			return err
		})
		dst = append(dst, &Text{open})
		dst = append(dst, list...)
		return append(dst, &Text{close}), err

	case "Cite", "Span":
		tup, err := d.tuple(c, 2)
		if err != nil {
			return dst, err
		}
		var list Inlines
		if err := d.at(tup, 1, func(r json.RawMessage) (err error) {
			list, err = d.inlines(r)
			return err
		}); err != nil {
			return dst, err
		}
		if tag == "Span" {
			var x Inline
			if err := d.at(tup, 0, func(r json.RawMessage) (err error) {
				x, err = d.spanInline(r, list)
				return err
			}); err != nil {
				return dst, err
			}
			if x != nil {
				return append(dst, x), nil
			}
		}
		return append(dst, list...), nil

	case "Code", "Math", "RawInline":
		tup, err := d.tuple(c, 2)
		if err != nil {
			return dst, err
		}
		var s string
		err = d.at(tup, 1, func(r json.RawMessage) (err error) {
			s, err = str(r)
			return err
		})
		if tag == "RawInline" {
			return append(dst, &Text{s}), err
		}
		return append(dst, &CodeSpan{s}), err

	case "Link", "Image":
		tup, err := d.tuple(c, 3)
		if err != nil {
			return dst, err
		}
		var classes []string
		if err := d.at(tup, 0, func(r json.RawMessage) (err error) {
			classes, _, err = d.attr(r)
			return err
		}); err != nil {
			return dst, err
		}
		var list Inlines
		if err := d.at(tup, 1, func(r json.RawMessage) (err error) {
			list, err = d.inlines(r)
			return err
		}); err != nil {
			return dst, err
		}
		var target []string
		if err := d.at(tup, 2, func(r json.RawMessage) error {
			return d.unmarshal(r, &target, "link target")
		}); err != nil {
			return dst, err
		}
		if len(target) != 2 {
			return dst, d.errorf("expected link target, found %d elements", len(target))
		}
		if tag == "Image" {
			return append(dst, &Image{Alt: list.plainText(), URL: target[0], Title: target[1]}), nil
		}
		for _, class := range classes {
			if class == "uri" || class == "email" {
				return append(dst, &Autolink{URL: list.plainText()}), nil
			}
		}
		return append(dst, &Link{Inner: list, URL: target[0], Title: target[1]}), nil

	case "Note":
		return dst, nil
	}
	leave()
	return dst, d.errorf("unknown inline type %q", tag)
}

// spanInline returns the model inline for a Span with attributes raw
// and content list, or nil if the Span is only a container.
func (d *decoder) spanInline(raw json.RawMessage, list Inlines) (Inline, error) {
	classes, kv, err := d.attr(raw)
	if err != nil {
		return nil, err
	}
	text := list.plainText()
	for _, class := range classes {
		switch class {
		case "user-mention":
			if h, ok := strings.CutPrefix(text, "@"); ok && h != "" {
				return &UserMention{Handle: h}, nil
			}
		case "issue":
			if digits, ok := strings.CutPrefix(text, "#"); ok {
				if n, ok := issueNumber(digits); ok {
					return &IssueReference{Number: n}, nil
				}
			}
		case "emoji":
			if name := kv["data-emoji"]; name != "" {
				return &EmojiShortcode{Name: name}, nil
			}
		case "escaped":
			if len(text) == 1 && isPunct(text[0]) {
				return &EscapedChar{text[0]}, nil
			}
		}
	}
	return nil, nil
}
