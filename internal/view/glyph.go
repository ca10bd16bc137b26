package view

import (
	"strings"

	"github.com/uvalib/virgo4-finna-ws/internal/finna"
)

// Glyph is the icon category of a record format
type Glyph string

// the fixed glyph vocabulary
const (
	GlyphBook      Glyph = "book"
	GlyphJournal   Glyph = "journal"
	GlyphVideo     Glyph = "video"
	GlyphAudio     Glyph = "audio"
	GlyphGame      Glyph = "game"
	GlyphEBook     Glyph = "ebook"
	GlyphAudiobook Glyph = "audiobook"
	GlyphMap       Glyph = "map"
	GlyphMusic     Glyph = "music"
	GlyphDocument  Glyph = "document"
)

var emoji = map[Glyph]string{
	GlyphBook:      "📖",
	GlyphJournal:   "📰",
	GlyphVideo:     "📀",
	GlyphAudio:     "💿",
	GlyphGame:      "🎮",
	GlyphEBook:     "📱",
	GlyphAudiobook: "🎧",
	GlyphMap:       "🗺️",
	GlyphMusic:     "🎵",
	GlyphDocument:  "📄",
}

// Emoji returns the icon shown for the glyph
func (g Glyph) Emoji() string {
	if e, ok := emoji[g]; ok {
		return e
	}
	return emoji[GlyphDocument]
}

type formatRule struct {
	glyph      Glyph
	codes      []string
	translated []string
}

// evaluated in order, first match wins. "book" is a substring of several
// later codes so e-books and audiobooks coded in English classify as books.
var formatRules = []formatRule{
	{GlyphBook, []string{"book"}, []string{"kirja"}},
	{GlyphJournal, []string{"journal", "magazine"}, []string{"lehti", "aikakauslehti"}},
	{GlyphVideo, []string{"video", "dvd"}, []string{"video", "dvd"}},
	{GlyphAudio, []string{"audio", "cd"}, []string{"ääni", "cd"}},
	{GlyphGame, []string{"game"}, []string{"peli"}},
	{GlyphEBook, []string{"ebook", "e-kirja"}, []string{"e-kirja", "sähköinen"}},
	{GlyphAudiobook, []string{"audiobook"}, []string{"äänikirja"}},
	{GlyphMap, []string{"map"}, []string{"kartta"}},
	{GlyphMusic, []string{"music", "score"}, []string{"nuotti", "musiikki"}},
}

// ClassifyFormat picks the glyph for a record from the first of its formats
func ClassifyFormat(formats finna.Labels) Glyph {
	if len(formats) == 0 {
		return GlyphDocument
	}
	code := strings.ToLower(formats[0].Value)
	translated := strings.ToLower(formats[0].Translated)

	for _, rule := range formatRules {
		if containsAny(code, rule.codes) || containsAny(translated, rule.translated) {
			return rule.glyph
		}
	}
	return GlyphDocument
}

func containsAny(s string, keywords []string) bool {
	if s == "" {
		return false
	}
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
