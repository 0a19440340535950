package ui

import (
	"fmt"
	"strconv"

	"jewel-lending/backend/app/models"

	"github.com/charmbracelet/bubbles/table"
)

type JewelsModel struct {
	Table table.Model
}

func NewJewelsModel(height int) JewelsModel {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 24},
		{Title: "Category", Width: 14},
		{Title: "Price/h", Width: 9},
		{Title: "Fine/h", Width: 9},
		{Title: "Count", Width: 6},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight(height)),
	)
	t.SetStyles(tableStyles())
	return JewelsModel{Table: t}
}

func (m *JewelsModel) SetJewels(jewels []models.Jewel) {
	rows := make([]table.Row, 0, len(jewels))
	for _, j := range jewels {
		rows = append(rows, table.Row{
			strconv.FormatUint(uint64(j.ID), 10),
			j.Name,
			j.Category,
			fmt.Sprintf("%.2f", j.PricePerHour),
			fmt.Sprintf("%.2f", j.FinePerHour),
			strconv.Itoa(j.Count),
		})
	}
	m.Table.SetRows(rows)
}
