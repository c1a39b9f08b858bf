package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Focus    key.Binding
	Submit   key.Binding
	Filter   key.Binding
	Sort     key.Binding
	PageSize key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Reset    key.Binding
	Dismiss  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "keluar")),
		Focus:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "pindah fokus")),
		Submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "analisis")),
		Filter:   key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "sentimen")),
		Sort:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "urutkan")),
		PageSize: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "per halaman")),
		PrevPage: key.NewBinding(key.WithKeys("pgup", "left"), key.WithHelp("←/pgup", "sebelumnya")),
		NextPage: key.NewBinding(key.WithKeys("pgdown", "right"), key.WithHelp("→/pgdn", "berikutnya")),
		Reset:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset filter")),
		Dismiss:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "tutup pesan")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Focus, k.Submit, k.Filter, k.Sort, k.PageSize, k.PrevPage, k.NextPage, k.Reset, k.Dismiss, k.Quit}
}
