package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/uvalib/virgo4-finna-ws/internal/browse"
	"github.com/uvalib/virgo4-finna-ws/internal/view"
)

func renderItems(w io.Writer, items []view.ListItem, offset int) {
	for i, item := range items {
		fmt.Fprintf(w, "%4d. %s %s", offset+i+1, item.Glyph.Emoji(), item.Title)
		if item.Author != nil {
			fmt.Fprintf(w, " / %s", *item.Author)
		}
		fmt.Fprintln(w)
	}
}

func renderMoreHint(w io.Writer, s browse.State) {
	if s.HasMore {
		fmt.Fprintf(w, "Näytetään %d / %d, :more lataa lisää\n", len(s.Items), s.TotalCount)
	}
}

func renderDetail(w io.Writer, d view.Detail) {
	fmt.Fprintf(w, "%s %s\n", d.Glyph.Emoji(), d.Title)
	fmt.Fprintln(w, strings.Repeat("=", len([]rune(d.Title))+3))
	for _, b := range d.Blocks() {
		if !b.Visible() {
			continue
		}
		fmt.Fprintf(w, "%s:\n", b.Label)
		for _, line := range b.Lines {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	if d.ImageURL != nil {
		fmt.Fprintf(w, "Kansikuva: %s\n", *d.ImageURL)
	}

	fmt.Fprintln(w, "Saatavuus:")
	if len(d.Availability) == 0 {
		fmt.Fprintf(w, "  %s\n", view.NoAvailability)
		return
	}
	for _, a := range d.Availability {
		fmt.Fprintf(w, "  %s: %s", a.Location, a.Label)
		if a.CallNumber != nil {
			fmt.Fprintf(w, ", %s", *a.CallNumber)
		}
		if a.DueDate != nil {
			fmt.Fprintf(w, ", eräpäivä %s", *a.DueDate)
		}
		if a.Copies != nil {
			fmt.Fprintf(w, " (%d kpl)", *a.Copies)
		}
		fmt.Fprintln(w)
	}
}

func renderError(w io.Writer, err error) {
	fmt.Fprintf(w, "Virhe: %s\n", err.Error())
}
