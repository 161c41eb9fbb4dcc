package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleEntries() []LedgerEntry {
	return []LedgerEntry{
		{Amount: 1000, Kind: EntryKindIncome},
		{Amount: 200, Kind: EntryKindInsuranceIn},
		{Amount: 300, Kind: EntryKindExpense},
		{Amount: 150, Kind: EntryKindInsuranceOut},
	}
}

func TestFoldBalance(t *testing.T) {
	// 1000 + 200 - 300 - 150
	assert.Equal(t, int64(750), FoldBalance(sampleEntries()))
	assert.Equal(t, int64(0), FoldBalance(nil))
}

func TestFoldInsuranceHeld(t *testing.T) {
	assert.Equal(t, int64(50), FoldInsuranceHeld(sampleEntries()))
}

func TestSummarizeEntries(t *testing.T) {
	s := SummarizeEntries(sampleEntries())
	assert.Equal(t, int64(1000), s.Revenue)
	assert.Equal(t, int64(300), s.Expense)
	assert.Equal(t, int64(200), s.InsuranceIn)
	assert.Equal(t, int64(150), s.InsuranceOut)
	assert.Equal(t, int64(750), s.NetFlow)
}

func TestEntryKind_Sign(t *testing.T) {
	assert.Equal(t, int64(1), EntryKindIncome.Sign())
	assert.Equal(t, int64(1), EntryKindInsuranceIn.Sign())
	assert.Equal(t, int64(-1), EntryKindExpense.Sign())
	assert.Equal(t, int64(-1), EntryKindInsuranceOut.Sign())
}

func TestEntryFilter_Matches(t *testing.T) {
	branch := int32(2)
	dept := DepartmentWomen
	actor := "u-1"
	at := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	entry := LedgerEntry{BranchID: 2, Department: DepartmentWomen, ActorID: &actor, At: at}

	t.Run("EmptyFilterMatchesAll", func(t *testing.T) {
		assert.True(t, EntryFilter{}.Matches(entry))
	})

	t.Run("BranchAndDepartment", func(t *testing.T) {
		assert.True(t, EntryFilter{BranchID: &branch, Department: &dept}.Matches(entry))

		other := int32(9)
		assert.False(t, EntryFilter{BranchID: &other}.Matches(entry))

		men := DepartmentMen
		assert.False(t, EntryFilter{Department: &men}.Matches(entry))
	})

	t.Run("Actor", func(t *testing.T) {
		assert.True(t, EntryFilter{ActorID: &actor}.Matches(entry))

		stranger := "u-2"
		assert.False(t, EntryFilter{ActorID: &stranger}.Matches(entry))

		anonymous := entry
		anonymous.ActorID = nil
		assert.False(t, EntryFilter{ActorID: &actor}.Matches(anonymous))
	})

	t.Run("PeriodBounds", func(t *testing.T) {
		assert.True(t, EntryFilter{From: at.AddDate(0, -1, 0), To: at.AddDate(0, 1, 0)}.Matches(entry))
		assert.False(t, EntryFilter{From: at.AddDate(0, 0, 1)}.Matches(entry))
		assert.False(t, EntryFilter{To: at.AddDate(0, 0, -1)}.Matches(entry))
	})
}
