package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewContactDefaults(t *testing.T) {
	contact, err := NewContact("Asha", "asha@example.com", "9058909777", "Pricing", "Looking for a quote")

	assert.NoError(t, err)
	assert.Equal(t, StatusNew, contact.Status)
	assert.Empty(t, contact.Notes)
	assert.Empty(t, contact.ID)
}

func TestNewContactRequiredFields(t *testing.T) {
	cases := []struct {
		name    string
		contact Contact
	}{
		{"missing name", Contact{Email: "a@x.com", Phone: "1", Message: "m", Status: StatusNew}},
		{"missing email", Contact{Name: "A", Phone: "1", Message: "m", Status: StatusNew}},
		{"missing phone", Contact{Name: "A", Email: "a@x.com", Message: "m", Status: StatusNew}},
		{"missing message", Contact{Name: "A", Email: "a@x.com", Phone: "1", Status: StatusNew}},
		{"bad status", Contact{Name: "A", Email: "a@x.com", Phone: "1", Message: "m", Status: "archived"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.contact.Validate())
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusLost} {
		assert.True(t, ValidStatus(s), s)
	}

	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("NEW"))
	assert.False(t, ValidStatus("archived"))
}

func TestParseNotesDropsBlanksAndTrims(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	notes := ParseNotes("a\nb\n\nc", now)

	assert.Len(t, notes, 3)
	assert.Equal(t, "a", notes[0].Content)
	assert.Equal(t, "b", notes[1].Content)
	assert.Equal(t, "c", notes[2].Content)
	for _, n := range notes {
		assert.Equal(t, now, n.Date)
	}

	notes = ParseNotes("  spaced out  \n\t\n", now)
	assert.Len(t, notes, 1)
	assert.Equal(t, "spaced out", notes[0].Content)

	assert.Empty(t, ParseNotes("", now))
}

func TestNotesRoundTrip(t *testing.T) {
	now := time.Now()

	notes := ParseNotes("a\nb\n\nc", now)
	flat := FlattenNotes(notes)

	assert.Equal(t, "a\nb\nc", flat)

	// A second pass re-derives the same contents in the same order.
	again := ParseNotes(flat, now.Add(time.Hour))
	assert.Equal(t, flat, FlattenNotes(again))
}
