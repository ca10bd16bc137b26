package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uvalib/virgo4-finna-ws/internal/finna"
)

func TestClassifyFormat(t *testing.T) {
	tests := []struct {
		name    string
		formats finna.Labels
		want    Glyph
	}{
		{"absent", nil, GlyphDocument},
		{"empty", finna.Labels{}, GlyphDocument},
		{"structured book", finna.Labels{{Value: "Book", Translated: "Kirja"}}, GlyphBook},
		{"translated only", finna.Labels{{Translated: "Kirja"}}, GlyphBook},
		{"bare journal", finna.Labels{{Value: "journal"}}, GlyphJournal},
		{"magazine translation", finna.Labels{{Value: "0/Other/", Translated: "Aikakauslehti"}}, GlyphJournal},
		{"dvd", finna.Labels{{Value: "0/Video/", Translated: "Video"}}, GlyphVideo},
		{"cd", finna.Labels{{Value: "1/Sound/CD/", Translated: "CD"}}, GlyphAudio},
		{"sound recording", finna.Labels{{Value: "0/Sound/", Translated: "Äänite"}}, GlyphAudio},
		{"game", finna.Labels{{Value: "0/Game/", Translated: "Peli"}}, GlyphGame},
		{"electronic", finna.Labels{{Value: "0/Electronic/", Translated: "Sähköinen aineisto"}}, GlyphEBook},
		{"map", finna.Labels{{Value: "map"}}, GlyphMap},
		{"score", finna.Labels{{Value: "0/MusicalScore/", Translated: "Nuotti"}}, GlyphMusic},
		{"no match", finna.Labels{{Value: "0/Other/", Translated: "Muu"}}, GlyphDocument},
		{"only first inspected", finna.Labels{{Value: "journal"}, {Value: "Book"}}, GlyphJournal},
		// the book rule is checked first and "book" is a substring of the code
		{"audiobook code", finna.Labels{{Value: "AudioBook"}}, GlyphBook},
		{"audiobook translation", finna.Labels{{Value: "0/Sound/", Translated: "Äänikirja"}}, GlyphBook},
		{"ebook code", finna.Labels{{Value: "1/Book/eBook/"}}, GlyphBook},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyFormat(tt.formats))
		})
	}
}

func TestGlyphEmoji(t *testing.T) {
	assert.Equal(t, "📖", GlyphBook.Emoji())
	assert.Equal(t, "🎧", GlyphAudiobook.Emoji())
	assert.Equal(t, "📄", GlyphDocument.Emoji())
	assert.Equal(t, "📄", Glyph("unheard-of").Emoji())
}
