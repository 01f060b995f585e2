package items

import (
	"time"

	"github.com/Veraticus/warikan/internal/model"
)

// Fixture is a named, reusable item set.
type Fixture struct {
	Name  string
	Items []model.NewLineItem
}

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

// FixtureJanuary is a small month of shared household spending.
// With every item shared by both, A advanced 3,460 and B advanced 2,999;
// each share is 3,229.5, so B owes A 231 (230.5 rounded half-up).
var FixtureJanuary = Fixture{
	Name: "january",
	Items: []model.NewLineItem{
		{EntryDate: day(9), Payer: model.ParticipantA.Ptr(), Name: "Groceries", Price: 3000},
		{EntryDate: day(10), Payer: model.ParticipantB.Ptr(), Name: "Dinner", Price: 2999},
		{EntryDate: day(10), Payer: model.ParticipantA.Ptr(), Name: "Train", Price: 460},
		{EntryDate: day(11), Payer: nil, Name: "Old entry", Price: 0},
	},
}
