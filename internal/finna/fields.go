package finna

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// DefaultSeparator is used by JoinText when no separator is given
const DefaultSeparator = ", "

var jsonNull = []byte("null")

// object members that carry a human readable label, in order of preference
var labelKeys = []string{"translated", "value", "name", "url"}

// JoinText returns the values joined with sep (", " when sep is empty). The
// second return is false when there is nothing to join.
func JoinText(values []string, sep string) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	if sep == "" {
		sep = DefaultSeparator
	}
	return strings.Join(values, sep), true
}

// AsSequence converts a scalar-or-list JSON value into a list of strings. A bare
// scalar becomes a single element list, null or a missing value gives nil and
// an empty list gives an empty, non-nil slice. Elements of an unexpected type
// are converted to their best-effort text; empty strings are dropped.
func AsSequence(raw json.RawMessage) []string {
	elems := elements(raw)
	if elems == nil {
		return nil
	}
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		if s, ok := asText(e); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// elements splits a scalar-or-list JSON value into its elements. A nil result
// means the value was missing or null.
func elements(raw []byte) []json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return nil
	}
	if raw[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err == nil {
			if items == nil {
				items = []json.RawMessage{}
			}
			return items
		}
	}
	return []json.RawMessage{raw}
}

// asText renders any JSON value as display text. ok is false for null.
func asText(raw []byte) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return "", false
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, true
		}
	case '[':
		return strings.Join(AsSequence(raw), DefaultSeparator), true
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err == nil {
			for _, key := range labelKeys {
				if s, ok := asText(obj[key]); ok && s != "" {
					return s, true
				}
			}
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err == nil {
		return compact.String(), true
	}
	return string(raw), true
}

// Text is a single display string. Numbers, booleans, lists and objects sent
// where a string was expected are converted instead of failing the decode.
type Text string

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(data []byte) error {
	s, _ := asText(data)
	*t = Text(s)
	return nil
}

func (t Text) String() string {
	return string(t)
}

// Strings is a field sent either as a bare string or as a list of strings
type Strings []string

// UnmarshalJSON implements json.Unmarshaler
func (s *Strings) UnmarshalJSON(data []byte) error {
	*s = AsSequence(data)
	return nil
}

// Person is an author or presenter sent either as a bare name or as an
// object with name, role and type.
type Person struct {
	Name string
	Role string
	Type string
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Person) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var obj struct {
			Name Text `json:"name"`
			Role Text `json:"role"`
			Type Text `json:"type"`
		}
		if err := json.Unmarshal(trimmed, &obj); err == nil {
			*p = Person{Name: string(obj.Name), Role: string(obj.Role), Type: string(obj.Type)}
			if p.Name == "" {
				p.Name, _ = asText(trimmed)
			}
			return nil
		}
	}
	name, _ := asText(trimmed)
	*p = Person{Name: name}
	return nil
}

// People is a list of persons; a bare value becomes a single entry
type People []Person

// UnmarshalJSON implements json.Unmarshaler
func (p *People) UnmarshalJSON(data []byte) error {
	elems := elements(data)
	if elems == nil {
		*p = nil
		return nil
	}
	out := make(People, 0, len(elems))
	for _, e := range elems {
		if bytes.Equal(bytes.TrimSpace(e), jsonNull) {
			continue
		}
		var person Person
		_ = person.UnmarshalJSON(e)
		out = append(out, person)
	}
	*p = out
	return nil
}

// Presenters arrives either as a plain list of persons or wrapped in an object
// that also carries free text details.
type Presenters struct {
	People  People
	Details Strings
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Presenters) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapper struct {
			Presenters People  `json:"presenters"`
			Details    Strings `json:"details"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err == nil {
			if wrapper.Presenters == nil {
				wrapper.Presenters = People{}
			}
			*p = Presenters{People: wrapper.Presenters, Details: wrapper.Details}
			return nil
		}
	}
	*p = Presenters{}
	return p.People.UnmarshalJSON(trimmed)
}

// Label is a coded value with an optional translation, as used for formats
// and buildings. A bare string is taken as the code.
type Label struct {
	Value      string
	Translated string
}

// UnmarshalJSON implements json.Unmarshaler
func (l *Label) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var obj struct {
			Value      Text `json:"value"`
			Translated Text `json:"translated"`
		}
		if err := json.Unmarshal(trimmed, &obj); err == nil {
			*l = Label{Value: string(obj.Value), Translated: string(obj.Translated)}
			return nil
		}
	}
	value, _ := asText(trimmed)
	*l = Label{Value: value}
	return nil
}

// Display returns the translated text, falling back to the raw value
func (l Label) Display() string {
	if l.Translated != "" {
		return l.Translated
	}
	return l.Value
}

// Labels is a list of labels; a bare value becomes a single entry
type Labels []Label

// UnmarshalJSON implements json.Unmarshaler
func (l *Labels) UnmarshalJSON(data []byte) error {
	elems := elements(data)
	if elems == nil {
		*l = nil
		return nil
	}
	out := make(Labels, 0, len(elems))
	for _, e := range elems {
		if bytes.Equal(bytes.TrimSpace(e), jsonNull) {
			continue
		}
		var label Label
		_ = label.UnmarshalJSON(e)
		out = append(out, label)
	}
	*l = out
	return nil
}

// Subjects is a list of subject headings. Each heading is either a single
// term or a list of terms forming a hierarchy.
type Subjects [][]string

// UnmarshalJSON implements json.Unmarshaler
func (s *Subjects) UnmarshalJSON(data []byte) error {
	elems := elements(data)
	if elems == nil {
		*s = nil
		return nil
	}
	out := make(Subjects, 0, len(elems))
	for _, e := range elems {
		if terms := AsSequence(e); len(terms) > 0 {
			out = append(out, terms)
		}
	}
	*s = out
	return nil
}

// Links is a list of URLs sent as strings or as objects with a url member
type Links []string

// UnmarshalJSON implements json.Unmarshaler
func (l *Links) UnmarshalJSON(data []byte) error {
	elems := elements(data)
	if elems == nil {
		*l = nil
		return nil
	}
	out := make(Links, 0, len(elems))
	for _, e := range elems {
		trimmed := bytes.TrimSpace(e)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			var obj struct {
				URL Text `json:"url"`
			}
			if err := json.Unmarshal(trimmed, &obj); err == nil && obj.URL != "" {
				out = append(out, string(obj.URL))
				continue
			}
		}
		if s, ok := asText(trimmed); ok && s != "" {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

// Count is a non-negative integer that also accepts numeric strings. Anything
// unparseable decodes as zero.
type Count int

// UnmarshalJSON implements json.Unmarshaler
func (c *Count) UnmarshalJSON(data []byte) error {
	s, _ := asText(data)
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		*c = 0
		return nil
	}
	*c = Count(f)
	return nil
}

// Rating is the user rating summary of a record
type Rating struct {
	Count   int
	Average float64
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Rating) UnmarshalJSON(data []byte) error {
	var obj struct {
		Count   Count `json:"count"`
		Average Text  `json:"average"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		*r = Rating{}
		return nil
	}
	avg, _ := strconv.ParseFloat(strings.TrimSpace(string(obj.Average)), 64)
	*r = Rating{Count: int(obj.Count), Average: avg}
	return nil
}
