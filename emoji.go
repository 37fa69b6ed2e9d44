// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

// An EmojiShortcode is an [Inline] representing a GitHub-style
// emoji reference like :smiley:.
// Names without a known glyph print as written.
type EmojiShortcode struct {
	Name string // without colons
}

// Glyph returns the Unicode text for the emoji, or :name: if it is unknown.
func (x *EmojiShortcode) Glyph() string {
	if g, ok := emoji[x.Name]; ok {
		return g
	}
	return ":" + x.Name + ":"
}

func (x *EmojiShortcode) printHTML(p *printer)     { p.text(x.Glyph()) }
func (x *EmojiShortcode) printMarkdown(p *printer) { p.md(":", x.Name, ":") }
func (x *EmojiShortcode) printText(p *printer)     { p.text(x.Glyph()) }
func (x *EmojiShortcode) printLaTeX(p *printer)    { p.text(x.Glyph()) }
func (x *EmojiShortcode) printTypst(p *printer)    { p.text(x.Glyph()) }

func (x *EmojiShortcode) appendNative(dst []node) []node {
	return append(dst, span([]string{"emoji"}, [][2]string{{"data-emoji", x.Name}}, x.Glyph()))
}

// maxEmojiLen bounds the scan for the closing colon.
const maxEmojiLen = 64

func isEmojiName(c byte) bool {
	return isLetterDigit(c) || c == '_' || c == '+' || c == '-'
}

// emojiEnd returns the index just past the :name: starting at s[start],
// or -1 if there is none.
func emojiEnd(s string, start int) int {
	if start > 0 && isLetterDigit(s[start-1]) {
		return -1
	}
	for end := start + 1; end < len(s) && end-start <= maxEmojiLen+1; end++ {
		c := s[end]
		if c == ':' {
			if end == start+1 {
				return -1
			}
			return end + 1
		}
		if !isEmojiName(c) {
			break
		}
	}
	return -1
}

// emojiAt reports whether s[i:] starts an emoji shortcode.
func emojiAt(s string, i int) bool {
	return emojiEnd(s, i) >= 0
}

// parseEmoji is an [inlineParser] for an [EmojiShortcode].
// The caller has checked that s[start] == ':'.
func parseEmoji(_ *parser, s string, start int) (x Inline, end int, ok bool) {
	end = emojiEnd(s, start)
	if end < 0 {
		return nil, 0, false
	}
	return &EmojiShortcode{Name: s[start+1 : end-1]}, end, true
}

// emoji maps the most common GitHub emoji names to their UTF-8 forms.
var emoji = map[string]string{
	"+1":                      "\U0001f44d",
	"-1":                      "\U0001f44e",
	"100":                     "\U0001f4af",
	"alarm_clock":             "⏰",
	"angry":                   "\U0001f620",
	"apple":                   "\U0001f34e",
	"arrow_down":              "⬇️",
	"arrow_left":              "⬅️",
	"arrow_right":             "➡️",
	"arrow_up":                "⬆️",
	"art":                     "\U0001f3a8",
	"baby":                    "\U0001f476",
	"balloon":                 "\U0001f388",
	"beer":                    "\U0001f37a",
	"bell":                    "\U0001f514",
	"bike":                    "\U0001f6b2",
	"bird":                    "\U0001f426",
	"birthday":                "\U0001f382",
	"blush":                   "\U0001f60a",
	"bomb":                    "\U0001f4a3",
	"book":                    "\U0001f4d6",
	"bookmark":                "\U0001f516",
	"boom":                    "\U0001f4a5",
	"broken_heart":            "\U0001f494",
	"bug":                     "\U0001f41b",
	"bulb":                    "\U0001f4a1",
	"bus":                     "\U0001f68c",
	"cake":                    "\U0001f370",
	"calendar":                "\U0001f4c6",
	"camera":                  "\U0001f4f7",
	"car":                     "\U0001f697",
	"cat":                     "\U0001f431",
	"check":                   "✔️",
	"checkered_flag":          "\U0001f3c1",
	"clap":                    "\U0001f44f",
	"clipboard":               "\U0001f4cb",
	"closed_lock_with_key":    "\U0001f510",
	"cloud":                   "☁️",
	"coffee":                  "☕",
	"computer":                "\U0001f4bb",
	"confused":                "\U0001f615",
	"construction":            "\U0001f6a7",
	"cool":                    "\U0001f192",
	"cry":                     "\U0001f622",
	"dash":                    "\U0001f4a8",
	"dog":                     "\U0001f436",
	"dollar":                  "\U0001f4b5",
	"door":                    "\U0001f6aa",
	"earth_americas":          "\U0001f30e",
	"egg":                     "\U0001f95a",
	"envelope":                "✉️",
	"exclamation":             "❗",
	"eyes":                    "\U0001f440",
	"fire":                    "\U0001f525",
	"fish":                    "\U0001f41f",
	"flushed":                 "\U0001f633",
	"gear":                    "⚙️",
	"gem":                     "\U0001f48e",
	"ghost":                   "\U0001f47b",
	"gift":                    "\U0001f381",
	"globe_with_meridians":    "\U0001f310",
	"green_heart":             "\U0001f49a",
	"grimacing":               "\U0001f62c",
	"grin":                    "\U0001f601",
	"grinning":                "\U0001f600",
	"hammer":                  "\U0001f528",
	"hammer_and_wrench":       "\U0001f6e0️",
	"hand":                    "✋",
	"heart":                   "❤️",
	"heart_eyes":              "\U0001f60d",
	"heavy_check_mark":        "✔️",
	"heavy_minus_sign":        "➖",
	"heavy_plus_sign":         "➕",
	"hourglass":               "⌛",
	"house":                   "\U0001f3e0",
	"hugs":                    "\U0001f917",
	"information_source":      "ℹ️",
	"innocent":                "\U0001f607",
	"joy":                     "\U0001f602",
	"key":                     "\U0001f511",
	"kiss":                    "\U0001f48b",
	"laughing":                "\U0001f606",
	"leaves":                  "\U0001f343",
	"link":                    "\U0001f517",
	"lipstick":                "\U0001f484",
	"lock":                    "\U0001f512",
	"loudspeaker":             "\U0001f4e2",
	"mag":                     "\U0001f50d",
	"mailbox":                 "\U0001f4eb",
	"memo":                    "\U0001f4dd",
	"moon":                    "\U0001f314",
	"muscle":                  "\U0001f4aa",
	"musical_note":            "\U0001f3b5",
	"neutral_face":            "\U0001f610",
	"no_entry":                "⛔",
	"no_entry_sign":           "\U0001f6ab",
	"ok":                      "\U0001f197",
	"ok_hand":                 "\U0001f44c",
	"open_mouth":              "\U0001f62e",
	"package":                 "\U0001f4e6",
	"page_facing_up":          "\U0001f4c4",
	"paperclip":               "\U0001f4ce",
	"partying_face":           "\U0001f973",
	"pencil":                  "\U0001f4dd",
	"pencil2":                 "✏️",
	"penguin":                 "\U0001f427",
	"pizza":                   "\U0001f355",
	"point_down":              "\U0001f447",
	"point_left":              "\U0001f448",
	"point_right":             "\U0001f449",
	"point_up":                "☝️",
	"pray":                    "\U0001f64f",
	"pushpin":                 "\U0001f4cc",
	"question":                "❓",
	"rabbit":                  "\U0001f430",
	"rage":                    "\U0001f621",
	"rainbow":                 "\U0001f308",
	"raised_hands":            "\U0001f64c",
	"recycle":                 "♻️",
	"red_circle":              "\U0001f534",
	"relaxed":                 "☺️",
	"relieved":                "\U0001f60c",
	"rocket":                  "\U0001f680",
	"rofl":                    "\U0001f923",
	"rose":                    "\U0001f339",
	"rotating_light":          "\U0001f6a8",
	"scream":                  "\U0001f631",
	"see_no_evil":             "\U0001f648",
	"shield":                  "\U0001f6e1️",
	"shipit":                  "\U0001f43f️",
	"skull":                   "\U0001f480",
	"sleeping":                "\U0001f634",
	"slightly_smiling_face":   "\U0001f642",
	"smile":                   "\U0001f604",
	"smiley":                  "\U0001f603",
	"smirk":                   "\U0001f60f",
	"snake":                   "\U0001f40d",
	"snowflake":               "❄️",
	"sob":                     "\U0001f62d",
	"sparkles":                "✨",
	"speech_balloon":          "\U0001f4ac",
	"star":                    "⭐",
	"star2":                   "\U0001f31f",
	"stop_sign":               "\U0001f6d1",
	"sun_with_face":           "\U0001f31e",
	"sunglasses":              "\U0001f60e",
	"sunny":                   "☀️",
	"sweat_smile":             "\U0001f605",
	"tada":                    "\U0001f389",
	"thinking":                "\U0001f914",
	"thumbsdown":              "\U0001f44e",
	"thumbsup":                "\U0001f44d",
	"trophy":                  "\U0001f3c6",
	"truck":                   "\U0001f69a",
	"turtle":                  "\U0001f422",
	"umbrella":                "☔",
	"unamused":                "\U0001f612",
	"unlock":                  "\U0001f513",
	"v":                       "✌️",
	"warning":                 "⚠️",
	"wave":                    "\U0001f44b",
	"white_check_mark":        "✅",
	"wink":                    "\U0001f609",
	"wrench":                  "\U0001f527",
	"x":                       "❌",
	"yum":                     "\U0001f60b",
	"zap":                     "⚡",
	"zzz":                     "\U0001f4a4",
	"heavy_exclamation_mark":  "❗",
	"heavy_dollar_sign":       "\U0001f4b2",
	"arrows_counterclockwise": "\U0001f504",
}
