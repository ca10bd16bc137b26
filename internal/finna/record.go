package finna

import (
	"bytes"
	"encoding/json"
)

// Response is the envelope returned by both the search and record endpoints
type Response struct {
	ResultCount int      `json:"resultCount"`
	Records     []Record `json:"records"`
	Status      Text     `json:"status"`
	Error       Text     `json:"error"`
}

// Record is one bibliographic record in the shape the API sends it. Absent
// fields are nil; list fields that were sent empty are non-nil and empty.
type Record struct {
	ID                   Text        `json:"id"`
	Title                Text        `json:"title"`
	Year                 Strings     `json:"year"`
	Author               Strings     `json:"author"`
	Authors              People      `json:"authors"`
	NonPresenterAuthors  People      `json:"nonPresenterAuthors"`
	Presenters           *Presenters `json:"presenters"`
	Publishers           Strings     `json:"publishers"`
	PublicationDates     Strings     `json:"publicationDates"`
	Formats              Labels      `json:"formats"`
	PhysicalDescriptions Strings     `json:"physicalDescriptions"`
	Languages            Strings     `json:"languages"`
	ISBNs                Strings     `json:"isbns"`
	ISSN                 Strings     `json:"issn"`
	Series               Strings     `json:"series"`
	Notes                Strings     `json:"notes"`
	Subjects             Subjects    `json:"subjects"`
	Description          Strings     `json:"description"`
	Rating               *Rating     `json:"rating"`
	OnlineURLs           Links       `json:"onlineUrls"`
	URL                  Strings     `json:"url"`
	Images               Strings     `json:"images"`
	ImageURLs            Strings     `json:"imageURLs"`
	Buildings            Labels      `json:"buildings"`
	Holdings             Holdings    `json:"holdings"`
}

// Holding is the branch level availability of one item
type Holding struct {
	Location     Text  `json:"location"`
	Building     Text  `json:"building"`
	Availability Text  `json:"availability"`
	Status       Text  `json:"status"`
	CallNumber   Text  `json:"callnumber"`
	ShelfNumber  Text  `json:"shelfnumber"`
	DueDate      Text  `json:"dueDate"`
	ReturnDate   Text  `json:"returnDate"`
	Copies       Count `json:"copies"`
}

// Holdings is the list of holdings of a record. An entry that is not an object
// is kept as a holding whose location is the entry's text.
type Holdings []Holding

// UnmarshalJSON implements json.Unmarshaler
func (h *Holdings) UnmarshalJSON(data []byte) error {
	elems := elements(data)
	if elems == nil {
		*h = nil
		return nil
	}
	out := make(Holdings, 0, len(elems))
	for _, e := range elems {
		trimmed := bytes.TrimSpace(e)
		if bytes.Equal(trimmed, jsonNull) {
			continue
		}
		var holding Holding
		if len(trimmed) > 0 && trimmed[0] == '{' {
			if err := json.Unmarshal(trimmed, &holding); err == nil {
				out = append(out, holding)
				continue
			}
		}
		if s, ok := asText(trimmed); ok && s != "" {
			out = append(out, Holding{Location: Text(s)})
		}
	}
	*h = out
	return nil
}
