package drill

import (
	"charm.land/bubbles/v2/key"
)

type keyMap struct {
	Flip    key.Binding
	Turn    key.Binding
	Prev    key.Binding
	Next    key.Binding
	Correct key.Binding
	Wrong   key.Binding
	Reset   key.Binding
	Shuffle key.Binding
	Finish  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Flip: key.NewBinding(
			key.WithKeys("space", "enter"),
			key.WithHelp("Space", "Flip"),
		),
		Turn: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("F", "Turn over"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "Prev"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "Next"),
		),
		Correct: key.NewBinding(
			key.WithKeys("1", "c"),
			key.WithHelp("1", "Correct"),
		),
		Wrong: key.NewBinding(
			key.WithKeys("2", "w"),
			key.WithHelp("2", "Wrong"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("R", "Restart"),
		),
		Shuffle: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("N", "New shuffle"),
		),
		Finish: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("Q", "Finish"),
		),
	}
}
