package demo

import (
	"github.com/vango-dev/weft/pkg/fiber"
	"github.com/vango-dev/weft/pkg/vdom"
)

// Showcase renders the navbar and one section per demo. The section chosen
// in the navbar is marked active.
func Showcase(props vdom.Props) *vdom.Element {
	active, setActive := fiber.UseState(Sections[0])

	section := func(id string, content *vdom.Element) *vdom.Element {
		class := "section-container"
		if id == active {
			class += " active"
		}
		return vdom.Section(vdom.ID(id), vdom.Class(class), content)
	}

	return vdom.Frag(
		vdom.Comp(Navbar, vdom.Prop("onNavigate", func(id string) { setActive(id) })),
		section("MusicPlayer", vdom.Comp(Playlist, props)),
		section("TicTacToe", vdom.Instance(NewTicTacToe)),
		section("ToDoList", vdom.Comp(TodoList)),
	)
}
