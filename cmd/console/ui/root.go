package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jewel-lending/backend/app/models"

	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateRequests state = iota
	stateJewels
	stateReject
)

type requestsLoadedMsg struct {
	reqs []models.BorrowRequest
	err  error
}

type jewelsLoadedMsg struct {
	jewels []models.Jewel
	err    error
}

type actionDoneMsg struct {
	status string
	err    error
}

const callTimeout = 10 * time.Second

type RootModel struct {
	Backend  Backend
	State    state
	Requests RequestsModel
	Jewels   JewelsModel
	Reject   RejectFormModel
	Status   string
	Err      error
	Quitting bool
	width    int
	height   int
}

func NewRootModel(b Backend) RootModel {
	return RootModel{
		Backend:  b,
		State:    stateRequests,
		Requests: NewRequestsModel(0),
		Jewels:   NewJewelsModel(0),
	}
}

func (m RootModel) Init() tea.Cmd {
	return tea.Batch(m.loadRequests, m.loadJewels)
}

func (m RootModel) loadRequests() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	reqs, err := m.Backend.ListRequests(ctx)
	return requestsLoadedMsg{reqs: reqs, err: err}
}

func (m RootModel) loadJewels() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	jewels, err := m.Backend.ListJewels(ctx)
	return jewelsLoadedMsg{jewels: jewels, err: err}
}

// act runs one lifecycle call and reloads both tables afterwards.
func (m RootModel) act(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		status, err := fn(ctx)
		return actionDoneMsg{status: status, err: err}
	}
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.Requests.Table.SetHeight(tableHeight(msg.Height))
		m.Jewels.Table.SetHeight(tableHeight(msg.Height))
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quitting = true
			return m, tea.Quit
		}

	case requestsLoadedMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Requests.SetRequests(msg.reqs)
		return m, nil

	case jewelsLoadedMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Jewels.SetJewels(msg.jewels)
		return m, nil

	case actionDoneMsg:
		m.Err = msg.err
		m.Status = ""
		if msg.err == nil {
			m.Status = msg.status
		}
		return m, tea.Batch(m.loadRequests, m.loadJewels)

	case rejectSubmittedMsg:
		m.State = stateRequests
		id, reason := msg.id, msg.reason
		return m, m.act(func(ctx context.Context) (string, error) {
			if err := m.Backend.Reject(ctx, id, reason); err != nil {
				return "", fmt.Errorf("reject #%d: %w", id, err)
			}
			return fmt.Sprintf("Request #%d rejected.", id), nil
		})

	case rejectCancelledMsg:
		m.State = stateRequests
		return m, nil
	}

	switch m.State {
	case stateReject:
		var cmd tea.Cmd
		m.Reject, cmd = m.Reject.Update(msg)
		return m, cmd
	case stateJewels:
		return m.updateJewels(msg)
	default:
		return m.updateRequests(msg)
	}
}

func (m RootModel) updateRequests(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q":
			m.Quitting = true
			return m, tea.Quit
		case "tab":
			m.State = stateJewels
			return m, nil
		case "R":
			m.Status, m.Err = "", nil
			return m, tea.Batch(m.loadRequests, m.loadJewels)
		case "a":
			req, ok := m.Requests.Selected()
			if !ok {
				return m, nil
			}
			id := req.ID
			return m, m.act(func(ctx context.Context) (string, error) {
				if err := m.Backend.Approve(ctx, id); err != nil {
					return "", fmt.Errorf("approve #%d: %w", id, err)
				}
				return fmt.Sprintf("Request #%d approved.", id), nil
			})
		case "x":
			req, ok := m.Requests.Selected()
			if !ok {
				return m, nil
			}
			m.State = stateReject
			m.Reject = NewRejectFormModel(req.ID)
			return m, nil
		case "r":
			req, ok := m.Requests.Selected()
			if !ok {
				return m, nil
			}
			id := req.ID
			return m, m.act(func(ctx context.Context) (string, error) {
				returned, err := m.Backend.MarkReturned(ctx, id)
				if err != nil {
					return "", fmt.Errorf("return #%d: %w", id, err)
				}
				if !returned {
					return fmt.Sprintf("Request #%d is not approved; nothing changed.", id), nil
				}
				return fmt.Sprintf("Request #%d marked as returned.", id), nil
			})
		}
	}
	var cmd tea.Cmd
	m.Requests.Table, cmd = m.Requests.Table.Update(msg)
	return m, cmd
}

func (m RootModel) updateJewels(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q":
			m.Quitting = true
			return m, tea.Quit
		case "tab":
			m.State = stateRequests
			return m, nil
		case "R":
			return m, m.loadJewels
		}
	}
	var cmd tea.Cmd
	m.Jewels.Table, cmd = m.Jewels.Table.Update(msg)
	return m, cmd
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	var b strings.Builder
	switch m.State {
	case stateReject:
		b.WriteString(m.Reject.View())
	case stateJewels:
		b.WriteString(titleStyle.Render("Jewel inventory") + "\n\n")
		b.WriteString(m.Jewels.Table.View() + "\n\n")
		b.WriteString(helpStyle.Render("tab requests | R refresh | q quit"))
	default:
		b.WriteString(titleStyle.Render("Borrow requests") + "\n\n")
		b.WriteString(m.Requests.Table.View() + "\n")
		if line := m.Requests.Summary(); line != "" {
			b.WriteString(line + "\n")
		}
		b.WriteString("\n" + helpStyle.Render("a approve | x reject | r mark returned | R refresh | tab jewels | q quit"))
	}
	if m.Status != "" {
		b.WriteString("\n" + infoStyle.Render(m.Status))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorStyle.Render(m.Err.Error()))
	}
	return docStyle.Render(b.String())
}
