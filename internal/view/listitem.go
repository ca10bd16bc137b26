package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/uvalib/virgo4-finna-ws/internal/finna"
)

// NoTitle is shown for records without a title
const NoTitle = "Ei nimeä"

// ListItem is one row of a search result list
type ListItem struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Author *string `json:"author,omitempty"`
	Glyph  Glyph   `json:"glyph"`
	Icon   string  `json:"icon"`
}

// NewListItem assembles the list view of a record
func NewListItem(rec finna.Record) ListItem {
	glyph := ClassifyFormat(rec.Formats)
	item := ListItem{
		ID:    string(rec.ID),
		Title: titleOf(&rec),
		Glyph: glyph,
		Icon:  glyph.Emoji(),
	}
	if author, ok := finna.JoinText(compact(rec.Author), ""); ok {
		item.Author = &author
	}
	return item
}

// NewListItems assembles list views in record order. The result is never nil.
func NewListItems(records []finna.Record) []ListItem {
	items := make([]ListItem, 0, len(records))
	for _, rec := range records {
		items = append(items, NewListItem(rec))
	}
	return items
}

// ResultCountText is the result count line shown above a result list, with
// Finnish digit grouping. It is empty when nothing was found.
func ResultCountText(count int) string {
	if count <= 0 {
		return ""
	}
	p := message.NewPrinter(language.Finnish)
	return p.Sprintf("Löytyi %d tulosta", count)
}
