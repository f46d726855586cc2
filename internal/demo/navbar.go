package demo

import "github.com/vango-dev/weft/pkg/vdom"

// Sections lists the section ids linked from the navbar, in order.
var Sections = []string{"MusicPlayer", "TicTacToe", "ToDoList"}

// Navbar links to each section. An "onNavigate" prop of type func(string)
// receives the chosen section id.
func Navbar(props vdom.Props) *vdom.Element {
	navigate, _ := props["onNavigate"].(func(string))
	links := vdom.Range(Sections, func(_ int, id string) *vdom.Element {
		return vdom.Button(vdom.Class("nav-link"), vdom.OnClick(func() {
			if navigate != nil {
				navigate(id)
			}
		}), id)
	})
	return vdom.Nav(vdom.Class("navbar"),
		vdom.Div(vdom.Class("nav-logo"), "weft"),
		vdom.Div(vdom.Class("nav-links"), links),
	)
}
