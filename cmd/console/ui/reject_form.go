package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// RejectFormModel prompts for the rejection reason of one request.
type RejectFormModel struct {
	RequestID uint
	Input     textinput.Model
}

type rejectSubmittedMsg struct {
	id     uint
	reason string
}

type rejectCancelledMsg struct{}

func NewRejectFormModel(id uint) RejectFormModel {
	in := textinput.New()
	in.Placeholder = "reason shown to the borrower"
	in.Prompt = "Reason: "
	in.CharLimit = 500
	in.Width = 60
	in.Focus()
	return RejectFormModel{RequestID: id, Input: in}
}

func (m RejectFormModel) Update(msg tea.Msg) (RejectFormModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			id, reason := m.RequestID, m.Input.Value()
			return m, func() tea.Msg { return rejectSubmittedMsg{id: id, reason: reason} }
		case tea.KeyEsc:
			return m, func() tea.Msg { return rejectCancelledMsg{} }
		}
	}
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m RejectFormModel) View() string {
	return titleStyle.Render(fmt.Sprintf("Reject request #%d", m.RequestID)) + "\n\n" +
		m.Input.View() + "\n\n" +
		helpStyle.Render("enter to reject, esc to cancel")
}
