package view

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/uvalib/virgo4-finna-ws/internal/finna"
)

// detail block labels
const (
	LabelAuthors             = "Tekijät"
	LabelPresenters          = "Esittäjät"
	LabelOtherAuthors        = "Muut tekijät"
	LabelYear                = "Vuosi"
	LabelPublicationDate     = "Julkaistu"
	LabelPublisher           = "Julkaisija"
	LabelFormats             = "Muoto"
	LabelPhysicalDescription = "Fyysinen kuvaus"
	LabelLanguages           = "Kieli"
	LabelISBN                = "ISBN"
	LabelISSN                = "ISSN"
	LabelSeries              = "Sarjat"
	LabelNotes               = "Muistiinpanot"
	LabelRating              = "Arvostelut"
	LabelOnlineLinks         = "Verkkolinkit"
	LabelURL                 = "URL"
	LabelSubjects            = "Aiheet"
	LabelDescription         = "Kuvaus"
)

var languageNames = map[string]string{
	"fin": "Suomi",
	"swe": "Ruotsi",
	"eng": "Englanti",
	"ger": "Saksa",
	"fra": "Ranska",
	"spa": "Espanja",
}

var stripPolicy = bluemonday.StrictPolicy()

// Detail is the full view of a single record
type Detail struct {
	ID                  string         `json:"id"`
	Title               string         `json:"title"`
	Glyph               Glyph          `json:"glyph"`
	Authors             *Block         `json:"authors,omitempty"`
	Presenters          *Block         `json:"presenters,omitempty"`
	OtherAuthors        *Block         `json:"otherAuthors,omitempty"`
	Year                *Block         `json:"year,omitempty"`
	PublicationDate     *Block         `json:"publicationDate,omitempty"`
	Publisher           *Block         `json:"publisher,omitempty"`
	Formats             *Block         `json:"formats,omitempty"`
	PhysicalDescription *Block         `json:"physicalDescription,omitempty"`
	Languages           *Block         `json:"languages,omitempty"`
	ISBNs               *Block         `json:"isbns,omitempty"`
	ISSN                *Block         `json:"issn,omitempty"`
	Series              *Block         `json:"series,omitempty"`
	Notes               *Block         `json:"notes,omitempty"`
	Rating              *Block         `json:"rating,omitempty"`
	OnlineLinks         *Block         `json:"onlineLinks,omitempty"`
	URL                 *Block         `json:"url,omitempty"`
	Subjects            *Block         `json:"subjects,omitempty"`
	Description         *Block         `json:"description,omitempty"`
	ImageURL            *string        `json:"imageUrl"`
	Availability        []Availability `json:"availability"`
}

// NewDetail assembles the detail view of a record. origin is the API origin
// used to resolve relative image paths.
func NewDetail(rec *finna.Record, origin string) Detail {
	if rec == nil {
		return Detail{Title: NoTitle, Glyph: GlyphDocument, Availability: ResolveAvailability(nil)}
	}

	d := Detail{
		ID:                  string(rec.ID),
		Title:               titleOf(rec),
		Glyph:               ClassifyFormat(rec.Formats),
		Authors:             authorsBlock(rec),
		Presenters:          presentersBlock(rec.Presenters),
		OtherAuthors:        otherAuthorsBlock(rec.NonPresenterAuthors),
		Year:                joinedBlock(LabelYear, rec.Year, ""),
		PublicationDate:     joinedBlock(LabelPublicationDate, rec.PublicationDates, ""),
		Publisher:           joinedBlock(LabelPublisher, rec.Publishers, ""),
		Formats:             formatsBlock(rec.Formats),
		PhysicalDescription: joinedBlock(LabelPhysicalDescription, rec.PhysicalDescriptions, ""),
		Languages:           languagesBlock(rec.Languages),
		ISBNs:               joinedBlock(LabelISBN, rec.ISBNs, ""),
		ISSN:                joinedBlock(LabelISSN, rec.ISSN, ""),
		Series:              joinedBlock(LabelSeries, rec.Series, ""),
		Notes:               lineBlock(LabelNotes, rec.Notes),
		Rating:              ratingBlock(rec.Rating),
		OnlineLinks:         lineBlock(LabelOnlineLinks, rec.OnlineURLs),
		URL:                 lineBlock(LabelURL, rec.URL),
		Subjects:            subjectsBlock(rec.Subjects),
		Description:         descriptionBlock(rec.Description),
		ImageURL:            ResolveImage(rec, origin),
		Availability:        ResolveAvailability(rec),
	}
	return d
}

// Blocks returns the metadata blocks in display order, skipping absent ones
func (d Detail) Blocks() []*Block {
	all := []*Block{
		d.Authors, d.Presenters, d.OtherAuthors, d.Year, d.PublicationDate,
		d.Publisher, d.Formats, d.PhysicalDescription, d.Languages, d.ISBNs,
		d.ISSN, d.Series, d.Notes, d.Rating, d.OnlineLinks, d.URL, d.Subjects,
		d.Description,
	}
	out := make([]*Block, 0, len(all))
	for _, b := range all {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

func titleOf(rec *finna.Record) string {
	if title := strings.TrimSpace(string(rec.Title)); title != "" {
		return title
	}
	return NoTitle
}

// authors list wins; the plain author field is only used when it is absent
func authorsBlock(rec *finna.Record) *Block {
	if rec.Authors != nil {
		names := make([]string, 0, len(rec.Authors))
		for _, a := range rec.Authors {
			names = append(names, a.Name)
		}
		return lineBlock(LabelAuthors, names)
	}
	return joinedBlock(LabelAuthors, rec.Author, "")
}

func presentersBlock(p *finna.Presenters) *Block {
	if p == nil {
		return nil
	}
	lines := make([]string, 0, len(p.People))
	for _, person := range p.People {
		if person.Name == "" {
			continue
		}
		line := person.Name
		if person.Role != "" {
			line += " (" + person.Role + ")"
		}
		lines = append(lines, line)
	}
	return &Block{Label: LabelPresenters, Lines: lines}
}

func otherAuthorsBlock(people finna.People) *Block {
	if people == nil {
		return nil
	}
	lines := make([]string, 0, len(people))
	for _, person := range people {
		if person.Name == "" {
			continue
		}
		line := person.Name
		if person.Role != "" {
			line += " (" + person.Role + ")"
		}
		if person.Type != "" {
			line += " - " + person.Type
		}
		lines = append(lines, line)
	}
	return &Block{Label: LabelOtherAuthors, Lines: lines}
}

func formatsBlock(formats finna.Labels) *Block {
	if formats == nil {
		return nil
	}
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, f.Display())
	}
	return lineBlock(LabelFormats, names)
}

func languagesBlock(codes finna.Strings) *Block {
	if codes == nil {
		return nil
	}
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		if name, ok := languageNames[code]; ok {
			names = append(names, name)
		} else {
			names = append(names, code)
		}
	}
	return joinedBlock(LabelLanguages, names, "")
}

// rating lines are only shown once someone has rated the record
func ratingBlock(r *finna.Rating) *Block {
	if r == nil {
		return nil
	}
	block := &Block{Label: LabelRating, Lines: []string{}}
	if r.Count > 0 {
		block.Lines = append(block.Lines,
			fmt.Sprintf("Keskiarvo: %.1f / 5.0", r.Average),
			fmt.Sprintf("Arvosteluja: %d", r.Count))
	}
	return block
}

func subjectsBlock(subjects finna.Subjects) *Block {
	if subjects == nil {
		return nil
	}
	lines := make([]string, 0, len(subjects))
	for _, terms := range subjects {
		if s, ok := finna.JoinText(compact(terms), " / "); ok {
			lines = append(lines, s)
		}
	}
	return &Block{Label: LabelSubjects, Lines: lines}
}

// description paragraphs arrive with html markup that is not rendered
func descriptionBlock(paragraphs finna.Strings) *Block {
	if paragraphs == nil {
		return nil
	}
	text := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		text = append(text, StripHTML(p))
	}
	return lineBlock(LabelDescription, text)
}

// StripHTML removes markup and decodes entities
func StripHTML(s string) string {
	s = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n").Replace(s)
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
}
