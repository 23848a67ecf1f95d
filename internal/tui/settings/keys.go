package settings

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
)

type listKeyMap struct {
	toggleStatusBar key.Binding
	toggleHelpMenu  key.Binding
	editItem        key.Binding
	exitInputMode   key.Binding
	reload          key.Binding
}

func newListKeyMap() *listKeyMap {
	return &listKeyMap{
		toggleStatusBar: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "toggle status"),
		),
		toggleHelpMenu: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "toggle help"),
		),
		editItem: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit"),
		),
		exitInputMode: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload from disk"),
		),
	}
}

type delegateKeyMap struct {
	capture key.Binding
	clear   key.Binding
}

func newDelegateKeyMap() *delegateKeyMap {
	return &delegateKeyMap{
		capture: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "capture hotkey"),
		),
		clear: key.NewBinding(
			key.WithKeys("D", "delete"),
			key.WithHelp("D", "clear"),
		),
	}
}

func newItemDelegate(keys *delegateKeyMap, listKeys *listKeyMap) list.DefaultDelegate {
	d := list.NewDefaultDelegate()

	d.Styles.SelectedTitle = selectedItemStyle
	d.Styles.SelectedDesc = selectedItemStyle

	help := []key.Binding{listKeys.editItem, keys.capture, keys.clear}

	d.ShortHelpFunc = func() []key.Binding {
		return help
	}

	d.FullHelpFunc = func() [][]key.Binding {
		return [][]key.Binding{help}
	}

	return d
}
