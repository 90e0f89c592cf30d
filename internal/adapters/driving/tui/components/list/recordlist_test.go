package list

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/appreview/internal/core/domain"
)

func sampleRecords(t *testing.T, n int) []domain.Record {
	t.Helper()
	out := make([]domain.Record, n)
	for i := range out {
		rec, err := domain.NewRecord(map[string]any{
			"ApplicationId":  fmt.Sprintf("BHAR-%05d", i+1),
			"Company Name":   fmt.Sprintf("Company %d", i+1),
			"Applicant Name": "Asha Rao",
			"Segment":        "Health",
		})
		require.NoError(t, err)
		out[i] = rec
	}
	return out
}

func TestNewRecordList(t *testing.T) {
	s := styles.DefaultStyles()
	list := NewRecordList(s)

	require.NotNil(t, list)
	assert.Equal(t, 0, list.Selected())
	assert.True(t, list.IsEmpty())
	assert.Equal(t, domain.ViewModeGrid, list.Mode())
	assert.Equal(t, "", list.SelectedID())
	assert.Equal(t, "", list.View())
}

func TestNewRecordList_NilStyles(t *testing.T) {
	list := NewRecordList(nil)

	require.NotNil(t, list)
	assert.NotNil(t, list.styles)
	assert.Nil(t, list.Init())
}

func TestRecordList_SetRecords(t *testing.T) {
	list := NewRecordList(nil)
	list.SetSelected(0)

	list.SetRecords(sampleRecords(t, 3), map[string]int{"BHAR-00002": 4})

	assert.Equal(t, 3, list.Count())
	assert.False(t, list.IsEmpty())
	assert.Equal(t, 0, list.Selected())
	assert.Equal(t, "BHAR-00001", list.SelectedID())
	assert.Equal(t, "Company 2", list.Summaries()[1].CompanyName)
}

func TestRecordList_SetRecordsResetsSelection(t *testing.T) {
	list := NewRecordList(nil)
	list.SetRecords(sampleRecords(t, 3), nil)
	list.SetSelected(2)

	list.SetRecords(sampleRecords(t, 2), nil)

	assert.Equal(t, 0, list.Selected())
}

func TestRecordList_ListNavigation(t *testing.T) {
	list := NewRecordList(nil)
	list.SetMode(domain.ViewModeList)
	list.SetRecords(sampleRecords(t, 3), nil)

	assert.Equal(t, 1, list.Columns())

	list.MoveDown()
	list.MoveDown()
	list.MoveDown()
	assert.Equal(t, 2, list.Selected())

	list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, list.Selected())

	list.Update(tea.KeyMsg{Type: tea.KeyUp})
	list.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, list.Selected())
}

func TestRecordList_GridNavigation(t *testing.T) {
	list := NewRecordList(nil)
	list.SetDimensions(styles.CardWidth*3, 40)
	list.SetRecords(sampleRecords(t, 9), nil)

	require.Equal(t, 3, list.Columns())

	list.MoveDown()
	assert.Equal(t, 3, list.Selected())

	list.MoveRight()
	assert.Equal(t, 4, list.Selected())

	list.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 7, list.Selected())

	// The last row has no row below it.
	list.MoveDown()
	assert.Equal(t, 7, list.Selected())

	list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	assert.Equal(t, 6, list.Selected())

	list.MoveUp()
	list.MoveUp()
	list.MoveUp()
	assert.Equal(t, 0, list.Selected())
}

func TestRecordList_NarrowGridHasOneColumn(t *testing.T) {
	list := NewRecordList(nil)
	list.SetDimensions(10, 20)

	assert.Equal(t, 1, list.Columns())
}

func TestRecordList_SetModeIgnoresInvalid(t *testing.T) {
	list := NewRecordList(nil)

	list.SetMode(domain.ViewMode("table"))

	assert.Equal(t, domain.ViewModeGrid, list.Mode())
}

func TestRecordList_SetSelectedOutOfRange(t *testing.T) {
	list := NewRecordList(nil)
	list.SetRecords(sampleRecords(t, 2), nil)

	list.SetSelected(5)
	assert.Equal(t, 0, list.Selected())

	list.SetSelected(-1)
	assert.Equal(t, 0, list.Selected())
}

func TestRecordList_ViewList(t *testing.T) {
	list := NewRecordList(nil)
	list.SetDimensions(120, 20)
	list.SetMode(domain.ViewModeList)
	list.SetRecords(sampleRecords(t, 2), map[string]int{"BHAR-00002": 3})

	view := list.View()

	assert.Contains(t, view, "> Company 1")
	assert.Contains(t, view, "Company 2")
	assert.Contains(t, view, "Asha Rao")
	assert.Contains(t, view, "✎ 3")
}

func TestRecordList_ViewGrid(t *testing.T) {
	list := NewRecordList(nil)
	list.SetDimensions(styles.CardWidth*2, 40)
	list.SetRecords(sampleRecords(t, 3), nil)

	view := list.View()

	assert.Contains(t, view, "Company 1")
	assert.Contains(t, view, "BHAR-00003")
	assert.Contains(t, view, "Health")
	assert.NotContains(t, view, "✎")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "₹₹₹...", truncate("₹₹₹₹₹₹₹₹", 6))
}
