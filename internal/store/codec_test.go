package store

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circussync/backend/internal/domain"
)

func TestEncodeTimeIsFixedWidthAndSortable(t *testing.T) {
	times := []time.Time{
		time.Date(2025, 12, 31, 23, 59, 59, 999999999, time.UTC),
		time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		time.Date(1999, 6, 15, 12, 0, 0, 500, time.FixedZone("CET", 3600)),
	}

	encoded := make([]string, len(times))
	for i, tm := range times {
		encoded[i] = encodeTime(tm)
		assert.Len(t, encoded[i], 30)
	}

	sortedStrings := append([]string{}, encoded...)
	sort.Strings(sortedStrings)

	sortedTimes := append([]time.Time{}, times...)
	sort.Slice(sortedTimes, func(i, j int) bool { return sortedTimes[i].Before(sortedTimes[j]) })

	for i := range sortedTimes {
		assert.Equal(t, encodeTime(sortedTimes[i]), sortedStrings[i])
	}
}

func TestDecodeTimeRoundTrip(t *testing.T) {
	orig := time.Date(2025, 3, 14, 9, 26, 53, 589793238, time.UTC)

	decoded, ok := decodeTime(encodeTime(orig))
	require.True(t, ok)
	assert.True(t, orig.Equal(decoded))
}

func TestDecodeTimeRejectsNonDates(t *testing.T) {
	for _, s := range []string{
		"",
		"hello",
		"2025-03-14",
		"not-a-date-but-thirty-chars-xx",
	} {
		_, ok := decodeTime(s)
		assert.False(t, ok, "should not decode %q", s)
	}
}

func TestEncodeDocumentUsesJSONNamesAndKeepsTimes(t *testing.T) {
	due := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	task := &domain.Task{
		Description: "Send offer",
		DueDate:     due,
		AssignedTo:  "user-1",
	}

	doc, err := EncodeDocument(task)
	require.NoError(t, err)

	assert.Equal(t, "Send offer", doc["description"])
	assert.Equal(t, "user-1", doc["assignedTo"])
	assert.Equal(t, false, doc["completed"])

	got, ok := doc["dueDate"].(time.Time)
	require.True(t, ok, "dueDate should decode back to time.Time")
	assert.True(t, due.Equal(got))
}

func TestEncodeDocumentHonorsOmitEmpty(t *testing.T) {
	client := &domain.Client{Name: "Stadthalle"}

	doc, err := EncodeDocument(client)
	require.NoError(t, err)

	_, hasLastPerformed := doc["lastPerformed"]
	assert.False(t, hasLastPerformed)
	_, hasFollowUp := doc["nextFollowUp"]
	assert.False(t, hasFollowUp)
}

func TestDecodeDocumentNestedStructs(t *testing.T) {
	date := time.Date(2025, 8, 20, 19, 30, 0, 0, time.UTC)
	event := &domain.Event{
		Name:     "Gala",
		Date:     date,
		Status:   domain.EventStatusConfirmed,
		Client:   "client-1",
		Location: "Hamburg",
		Performers: []domain.Assignment{
			{Performer: "p1", Role: "aerial", Pay: 650, Confirmed: true},
			{Performer: "p2", Role: "fire", Pay: 550},
		},
	}

	doc, err := EncodeDocument(event)
	require.NoError(t, err)

	var decoded domain.Event
	require.NoError(t, DecodeDocument(doc, &decoded))

	assert.Equal(t, "Gala", decoded.Name)
	assert.True(t, date.Equal(decoded.Date))
	assert.Equal(t, domain.EventStatusConfirmed, decoded.Status)
	require.Len(t, decoded.Performers, 2)
	assert.Equal(t, "p1", decoded.Performers[0].Performer)
	assert.Equal(t, 650.0, decoded.Performers[0].Pay)
	assert.True(t, decoded.Performers[0].Confirmed)
}
