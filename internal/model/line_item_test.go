package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParticipant(t *testing.T) {
	tests := []struct {
		input  string
		want   Participant
		wantOK bool
	}{
		{input: "a", want: ParticipantA, wantOK: true},
		{input: " B ", want: ParticipantB, wantOK: true},
		{input: "", wantOK: false},
		{input: "ゆー", wantOK: false},
		{input: "both", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseParticipant(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParticipant_Other(t *testing.T) {
	assert.Equal(t, ParticipantB, ParticipantA.Other())
	assert.Equal(t, ParticipantA, ParticipantB.Other())
}

func TestLineItem_Validate(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		item    LineItem
		wantErr bool
	}{
		{name: "valid", item: LineItem{Name: "rice", Price: 500, EntryDate: day}},
		{name: "zero price allowed", item: LineItem{Name: "free sample", Price: 0, EntryDate: day}},
		{name: "blank name", item: LineItem{Name: "   ", Price: 500, EntryDate: day}, wantErr: true},
		{name: "negative price", item: LineItem{Name: "refund", Price: -1, EntryDate: day}, wantErr: true},
		{name: "missing date", item: LineItem{Name: "rice", Price: 500}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidLineItem)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLineItem_PayerAndShares(t *testing.T) {
	item := LineItem{Payer: ParticipantB.Ptr(), SharedByA: true}

	assert.True(t, item.PayerIs(ParticipantB))
	assert.False(t, item.PayerIs(ParticipantA))
	assert.True(t, item.SharedBy(ParticipantA))
	assert.False(t, item.SharedBy(ParticipantB))

	legacy := LineItem{}
	assert.False(t, legacy.PayerIs(ParticipantA))
	assert.False(t, legacy.PayerIs(ParticipantB))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(d))
	assert.Equal(t, time.UTC, d.Location())

	_, err = ParseDate("2024/02/29")
	assert.Error(t, err)
}

func TestTruncateToDate(t *testing.T) {
	loc := time.FixedZone("JST", 9*60*60)
	got := TruncateToDate(time.Date(2024, 3, 1, 1, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got)
}
