package demo

import (
	"sort"
	"strings"

	"github.com/vango-dev/weft/internal/errors"
	"github.com/vango-dev/weft/pkg/vdom"
)

// App is a named demo application.
type App struct {
	Name        string
	Description string
	Build       func() *vdom.Element
}

var apps = map[string]App{
	"app": {
		Name:        "app",
		Description: "Navbar with the music player, tic-tac-toe and to-do list",
		Build:       func() *vdom.Element { return vdom.Comp(Showcase) },
	},
	"counter": {
		Name:        "counter",
		Description: "A single stateful counter",
		Build:       func() *vdom.Element { return vdom.Instance(NewCounter) },
	},
	"playlist": {
		Name:        "playlist",
		Description: "Music player driven by effects",
		Build:       func() *vdom.Element { return vdom.Comp(Playlist) },
	},
	"todo": {
		Name:        "todo",
		Description: "To-do list with an add form",
		Build:       func() *vdom.Element { return vdom.Comp(TodoList) },
	},
	"tictactoe": {
		Name:        "tictactoe",
		Description: "Two-player tic-tac-toe",
		Build:       func() *vdom.Element { return vdom.Instance(NewTicTacToe) },
	},
}

// Default is the app served when none is named.
const Default = "app"

// Apps returns every demo sorted by name.
func Apps() []App {
	out := make([]App, 0, len(apps))
	for _, a := range apps {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the sorted demo names.
func Names() []string {
	names := make([]string, 0, len(apps))
	for _, a := range Apps() {
		names = append(names, a.Name)
	}
	return names
}

// Lookup finds a demo by name.
func Lookup(name string) (App, error) {
	if name == "" {
		name = Default
	}
	a, ok := apps[name]
	if !ok {
		return App{}, errors.New("E150").
			WithDetail("no demo named " + name).
			WithSuggestion("Available: " + strings.Join(Names(), ", "))
	}
	return a, nil
}
