package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uvalib/virgo4-finna-ws/internal/finna"
)

func TestNewListItem(t *testing.T) {
	item := NewListItem(*decodeRecord(t, `{"id":"a","title":"Muumipeikko ja pyrstötähti","author":["Jansson, Tove","Jansson, Lars"],"formats":[{"value":"0/Book/","translated":"Kirja"}]}`))
	assert.Equal(t, "a", item.ID)
	assert.Equal(t, "Muumipeikko ja pyrstötähti", item.Title)
	require.NotNil(t, item.Author)
	assert.Equal(t, "Jansson, Tove, Jansson, Lars", *item.Author)
	assert.Equal(t, GlyphBook, item.Glyph)
	assert.Equal(t, "📖", item.Icon)

	item = NewListItem(*decodeRecord(t, `{"id":"b","author":"Linna, Väinö"}`))
	assert.Equal(t, NoTitle, item.Title)
	assert.Equal(t, "Linna, Väinö", *item.Author)
	assert.Equal(t, GlyphDocument, item.Glyph)

	item = NewListItem(*decodeRecord(t, `{"id":"c","title":"","author":[]}`))
	assert.Equal(t, NoTitle, item.Title)
	assert.Nil(t, item.Author)
}

func TestNewListItems(t *testing.T) {
	items := NewListItems(nil)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	items = NewListItems([]finna.Record{{ID: "1"}, {ID: "2"}, {ID: "1"}})
	require.Len(t, items, 3)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "2", items[1].ID)
	assert.Equal(t, "1", items[2].ID)
}

func TestResultCountText(t *testing.T) {
	assert.Equal(t, "", ResultCountText(0))
	assert.Equal(t, "Löytyi 1 tulosta", ResultCountText(1))
	assert.Equal(t, "Löytyi 999 tulosta", ResultCountText(999))
	assert.Regexp(t, `^Löytyi 1[\x{00a0}\x{202f} ]234 tulosta$`, ResultCountText(1234))
	assert.Regexp(t, `^Löytyi 1[\x{00a0}\x{202f} ]234[\x{00a0}\x{202f} ]567 tulosta$`, ResultCountText(1234567))
}
