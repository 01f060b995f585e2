package settlement

import (
	"github.com/Veraticus/warikan/internal/model"
	"github.com/shopspring/decimal"
)

// Direction says who pays whom.
type Direction int

// Possible settlement outcomes.
const (
	DirectionNone Direction = iota
	DirectionBPaysA
	DirectionAPaysB
)

func (d Direction) String() string {
	switch d {
	case DirectionBPaysA:
		return "b_pays_a"
	case DirectionAPaysB:
		return "a_pays_b"
	default:
		return "none"
	}
}

// Transfer is the single payment that zeroes both participants' positions.
// Amount is zero exactly when Direction is DirectionNone.
type Transfer struct {
	Direction Direction
	Amount    int64
}

// From returns the paying participant. ok is false when no payment is due.
func (t Transfer) From() (model.Participant, bool) {
	switch t.Direction {
	case DirectionBPaysA:
		return model.ParticipantB, true
	case DirectionAPaysB:
		return model.ParticipantA, true
	default:
		return "", false
	}
}

// ComputeNetTransfer reduces totals to one payment instruction.
//
// B's net is checked before A's. With consistent totals at most one net is
// positive, so the order only matters for inputs where netA+netB != 0; such
// inputs are trusted as given rather than reconciled.
func ComputeNetTransfer(t Totals) Transfer {
	if netB := t.NetB(); netB.IsPositive() {
		return newTransfer(DirectionBPaysA, netB)
	}
	if netA := t.NetA(); netA.IsPositive() {
		return newTransfer(DirectionAPaysB, netA)
	}
	return Transfer{Direction: DirectionNone}
}

// newTransfer rounds half away from zero, which is half-up for the positive
// nets that reach it. A net below one half rounds to nothing owed.
func newTransfer(d Direction, net decimal.Decimal) Transfer {
	amount := net.Round(0).IntPart()
	if amount == 0 {
		return Transfer{Direction: DirectionNone}
	}
	return Transfer{Direction: d, Amount: amount}
}
