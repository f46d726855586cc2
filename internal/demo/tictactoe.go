package demo

import (
	"strconv"

	"github.com/vango-dev/weft/pkg/fiber"
	"github.com/vango-dev/weft/pkg/vdom"
)

var winningLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Winner returns "X" or "O" if a line is complete, or "".
func Winner(squares [9]string) string {
	for _, l := range winningLines {
		a := squares[l[0]]
		if a != "" && a == squares[l[1]] && a == squares[l[2]] {
			return a
		}
	}
	return ""
}

// TicTacToe is a two-player board kept in map state.
type TicTacToe struct {
	fiber.Component
}

// NewTicTacToe constructs the board component.
func NewTicTacToe(vdom.Props) vdom.Stateful {
	g := &TicTacToe{}
	g.State = map[string]any{"squares": [9]string{}, "xIsNext": true}
	return g
}

func (g *TicTacToe) squares() [9]string {
	s, _ := g.Get("squares").([9]string)
	return s
}

func (g *TicTacToe) xIsNext() bool {
	x, _ := g.Get("xIsNext").(bool)
	return x
}

func (g *TicTacToe) play(i int) {
	squares := g.squares()
	if squares[i] != "" || Winner(squares) != "" {
		return
	}
	if g.xIsNext() {
		squares[i] = "X"
	} else {
		squares[i] = "O"
	}
	g.SetState(map[string]any{"squares": squares, "xIsNext": !g.xIsNext()})
}

func (g *TicTacToe) status() string {
	squares := g.squares()
	if w := Winner(squares); w != "" {
		return "Winner: " + w
	}
	for _, s := range squares {
		if s == "" {
			if g.xIsNext() {
				return "Next player: X"
			}
			return "Next player: O"
		}
	}
	return "Draw"
}

// Render implements vdom.Stateful.
func (g *TicTacToe) Render() *vdom.Element {
	squares := g.squares()
	rows := make([]*vdom.Element, 0, 3)
	for r := 0; r < 3; r++ {
		cells := make([]*vdom.Element, 0, 3)
		for c := 0; c < 3; c++ {
			i := r*3 + c
			cells = append(cells, vdom.Button(
				vdom.Class("square"),
				vdom.Data("square", strconv.Itoa(i)),
				vdom.OnClick(func() { g.play(i) }),
				squares[i],
			))
		}
		rows = append(rows, vdom.Div(vdom.Class("board-row"), cells))
	}
	return vdom.Div(vdom.Class("game"),
		vdom.Div(vdom.Class("status"), g.status()),
		vdom.Div(vdom.Class("board"), rows),
		vdom.Button(vdom.Class("reset"), vdom.OnClick(func() {
			g.SetState(map[string]any{"squares": [9]string{}, "xIsNext": true})
		}), "Reset"),
	)
}
