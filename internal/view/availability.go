package view

import (
	"github.com/uvalib/virgo4-finna-ws/internal/finna"
)

// UnknownLibrary is the location shown when a holding names no branch
const UnknownLibrary = "Tuntematon kirjasto"

// NoAvailability is shown when a record has neither holdings nor buildings
const NoAvailability = "Saatavuustietoja ei saatavilla"

// availability codes
const (
	CodeAvailable  = "available"
	CodeCheckedOut = "checkedout"
	CodeOnOrder    = "onorder"
	CodeMissing    = "missing"
	CodeUnknown    = "unknown"
)

var availabilityLabels = map[string]string{
	CodeAvailable:  "Saatavissa",
	CodeCheckedOut: "Lainassa",
	CodeOnOrder:    "Tilauksessa",
	CodeMissing:    "Puuttuu",
}

// Availability is the state of a record at one library branch
type Availability struct {
	Location   string  `json:"location"`
	Code       string  `json:"availability"`
	Label      string  `json:"label"`
	CallNumber *string `json:"callNumber,omitempty"`
	DueDate    *string `json:"dueDate,omitempty"`
	Copies     *int    `json:"copies,omitempty"`
}

// AvailabilityLabel translates an availability code for display. Unknown
// codes are returned unchanged.
func AvailabilityLabel(code string) string {
	if label, ok := availabilityLabels[code]; ok {
		return label
	}
	return code
}

// ResolveAvailability lists per branch availability from the record holdings,
// falling back to its buildings. The result is never nil.
func ResolveAvailability(rec *finna.Record) []Availability {
	out := make([]Availability, 0)
	if rec == nil {
		return out
	}

	if len(rec.Holdings) > 0 {
		for _, h := range rec.Holdings {
			code := firstNonEmpty(string(h.Availability), string(h.Status), CodeUnknown)
			entry := Availability{
				Location:   firstNonEmpty(string(h.Location), string(h.Building), UnknownLibrary),
				Code:       code,
				Label:      AvailabilityLabel(code),
				CallNumber: optional(firstNonEmpty(string(h.CallNumber), string(h.ShelfNumber))),
				DueDate:    optional(firstNonEmpty(string(h.DueDate), string(h.ReturnDate))),
			}
			if h.Copies > 0 {
				copies := int(h.Copies)
				entry.Copies = &copies
			}
			out = append(out, entry)
		}
		return out
	}

	for _, b := range rec.Buildings {
		location := b.Display()
		if location == "" {
			continue
		}
		out = append(out, Availability{
			Location: location,
			Code:     CodeUnknown,
			Label:    AvailabilityLabel(CodeUnknown),
		})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
