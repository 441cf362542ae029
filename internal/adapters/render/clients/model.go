package clients

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nuvora-hq/crm-cli/internal/domain"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	list    []domain.Client
	details *domain.Client
	opts    RenderOptions
	styles  styles
	output  string
}

func newListModel(list []domain.Client, opts RenderOptions) model {
	return model{
		list:   list,
		opts:   opts,
		styles: newStyles(),
	}
}

func newDetailsModel(client domain.Client, opts RenderOptions) model {
	return model{
		details: &client,
		opts:    opts,
		styles:  newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		if m.details != nil {
			m.output = renderDetails(*m.details, m.opts, m.styles)
		} else {
			m.output = renderList(m.list, m.opts, m.styles)
		}
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// RenderList renders the client collection as styled cards.
func RenderList(list []domain.Client, opts RenderOptions) (string, error) {
	return run(newListModel(list, opts))
}

// RenderDetails renders a single client in full.
func RenderDetails(client domain.Client, opts RenderOptions) (string, error) {
	return run(newDetailsModel(client, opts))
}

func run(m model) (string, error) {
	p := tea.NewProgram(
		m,
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
