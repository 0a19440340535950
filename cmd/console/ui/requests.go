package ui

import (
	"fmt"
	"strconv"

	"jewel-lending/backend/app/models"

	"github.com/charmbracelet/bubbles/table"
)

type RequestsModel struct {
	Table    table.Model
	Requests []models.BorrowRequest
}

func NewRequestsModel(height int) RequestsModel {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "User", Width: 22},
		{Title: "Jewel", Width: 18},
		{Title: "Start", Width: 16},
		{Title: "End", Width: 16},
		{Title: "Status", Width: 9},
		{Title: "Amount", Width: 9},
		{Title: "Fine", Width: 8},
		{Title: "Notes", Width: 20},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight(height)),
	)
	t.SetStyles(tableStyles())
	return RequestsModel{Table: t}
}

func (m *RequestsModel) SetRequests(reqs []models.BorrowRequest) {
	m.Requests = reqs
	rows := make([]table.Row, 0, len(reqs))
	for i := range reqs {
		r := &reqs[i]
		rows = append(rows, table.Row{
			strconv.FormatUint(uint64(r.ID), 10),
			r.User.Email,
			r.JewelName(),
			r.StartTime.Format("2006-01-02 15:04"),
			r.EndTime.Format("2006-01-02 15:04"),
			string(r.Status),
			fmt.Sprintf("%.2f", r.CalculatedAmount),
			fmt.Sprintf("%.2f", r.FineAmount),
			r.Notes,
		})
	}
	m.Table.SetRows(rows)
}

// Selected returns the request under the cursor.
func (m RequestsModel) Selected() (models.BorrowRequest, bool) {
	i := m.Table.Cursor()
	if i < 0 || i >= len(m.Requests) {
		return models.BorrowRequest{}, false
	}
	return m.Requests[i], true
}

// Summary describes the request under the cursor, with its status highlighted.
func (m RequestsModel) Summary() string {
	r, ok := m.Selected()
	if !ok {
		return ""
	}
	line := fmt.Sprintf("#%d %s for %s: %s", r.ID, r.JewelName(), r.User.Email, statusBadge(r.Status))
	if r.FineAmount > 0 {
		line += fmt.Sprintf(", fine %.2f", r.FineAmount)
	}
	return line
}

func tableHeight(h int) int {
	if h <= 0 {
		return 15
	}
	if h-10 < 3 {
		return 3
	}
	return h - 10
}
