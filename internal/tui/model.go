// Package tui is the terminal front end of the review analyzer.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"review_analyzer/internal/domain"
	"review_analyzer/internal/reviewapi"
	"review_analyzer/internal/view"
)

type focus int

const (
	focusProduct focus = iota
	focusReview
	focusSearch
	focusList
	focusCount
)

type Model struct {
	api     API
	timeout time.Duration
	state   view.State
	keys    keyMap
	styles  styles

	product textinput.Model
	review  textarea.Model
	search  textinput.Model
	spinner spinner.Model
	focus   focus

	width  int
	height int
}

func New(api API, timeout time.Duration) *Model {
	if timeout <= 0 {
		timeout = reviewapi.DefaultTimeout
	}
	st := defaultStyles()

	product := textinput.New()
	product.Placeholder = "Contoh: iPhone 15 Pro"
	product.CharLimit = 255
	product.Prompt = "› "
	product.Focus()

	review := textarea.New()
	review.Placeholder = "Tulis ulasan Anda di sini..."
	review.ShowLineNumbers = false
	review.CharLimit = 5000
	review.SetHeight(4)
	review.SetWidth(60)

	search := textinput.New()
	search.Placeholder = "Cari nama produk..."
	search.Prompt = "🔍 "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.focused

	return &Model{
		api:     api,
		timeout: timeout,
		state:   view.New(),
		keys:    defaultKeys(),
		styles:  st,
		product: product,
		review:  review,
		search:  search,
		spinner: sp,
	}
}

// State exposes the current view state.
func (m *Model) State() view.State { return m.state }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.apply(view.Init{}), m.spinner.Tick, textinput.Blink)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		w := max(20, min(msg.Width-4, 100))
		m.review.SetWidth(w)
		m.product.Width = w - 2
		m.search.Width = w - 4
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case view.Event:
		return m, m.apply(msg)
	}
	return m, nil
}

// apply runs the reducer and keeps the input widgets in step with the state.
func (m *Model) apply(ev view.Event) tea.Cmd {
	var effs []view.Effect
	m.state, effs = view.Update(m.state, ev)
	if m.state.Form == (view.Form{}) {
		if m.product.Value() != "" {
			m.product.Reset()
		}
		if m.review.Value() != "" {
			m.review.Reset()
		}
	}
	if m.search.Value() != m.state.Query.Product {
		m.search.SetValue(m.state.Query.Product)
	}
	return m.runEffects(effs)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	q := m.state.Query
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Focus):
		step := focus(1)
		if msg.String() == "shift+tab" {
			step = focusCount - 1
		}
		return m.setFocus((m.focus + step) % focusCount)
	case key.Matches(msg, m.keys.Submit):
		return m.apply(view.Submit{})
	case key.Matches(msg, m.keys.Filter):
		return m.apply(view.FilterChanged{Filter: view.Next(view.Filters, q.Filter)})
	case key.Matches(msg, m.keys.Sort):
		return m.apply(view.SortChanged{Sort: view.Next(domain.SortKeys, q.Sort)})
	case key.Matches(msg, m.keys.PageSize):
		return m.apply(view.PageSizeChanged{PageSize: view.Next(domain.PageSizes, q.PageSize)})
	case key.Matches(msg, m.keys.Reset):
		return m.apply(view.ResetFilters{})
	case key.Matches(msg, m.keys.Dismiss):
		return m.apply(view.Dismiss{})
	}

	// arrows page only when no text field has focus
	pageKey := m.focus == focusList || msg.Type == tea.KeyPgUp || msg.Type == tea.KeyPgDown
	if pageKey && key.Matches(msg, m.keys.PrevPage) {
		return m.apply(view.PagePrev{})
	}
	if pageKey && key.Matches(msg, m.keys.NextPage) {
		return m.apply(view.PageNext{})
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusProduct, focusReview:
		if m.state.Busy {
			return nil // form is disabled while analyzing
		}
		if m.focus == focusProduct {
			m.product, cmd = m.product.Update(msg)
		} else {
			m.review, cmd = m.review.Update(msg)
		}
		return tea.Batch(cmd, m.apply(view.FormEdited{ProductName: m.product.Value(), ReviewText: m.review.Value()}))
	case focusSearch:
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() == q.Product {
			return cmd
		}
		return tea.Batch(cmd, m.apply(view.ProductChanged{Product: m.search.Value()}))
	}
	return nil
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.product.Blur()
	m.review.Blur()
	m.search.Blur()
	switch f {
	case focusProduct:
		return m.product.Focus()
	case focusReview:
		return m.review.Focus()
	case focusSearch:
		return m.search.Focus()
	}
	return nil
}
