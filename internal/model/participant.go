package model

import "strings"

// Participant identifies one of the two people sharing the ledger.
type Participant string

// The two participants. The stored values are stable; display names come from config.
const (
	ParticipantA Participant = "a"
	ParticipantB Participant = "b"
)

// ParseParticipant maps a stored or user-supplied value onto a participant.
// Unrecognized values report false rather than an error, so legacy rows with
// missing or malformed payers stay readable.
func ParseParticipant(s string) (Participant, bool) {
	switch Participant(strings.ToLower(strings.TrimSpace(s))) {
	case ParticipantA:
		return ParticipantA, true
	case ParticipantB:
		return ParticipantB, true
	default:
		return "", false
	}
}

// Other returns the counterpart of p.
func (p Participant) Other() Participant {
	if p == ParticipantA {
		return ParticipantB
	}
	return ParticipantA
}

// Ptr returns a pointer to a copy of p, for optional payer fields.
func (p Participant) Ptr() *Participant {
	return &p
}
