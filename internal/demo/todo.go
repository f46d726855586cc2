package demo

import (
	"strings"

	"github.com/vango-dev/weft/pkg/fiber"
	"github.com/vango-dev/weft/pkg/host"
	"github.com/vango-dev/weft/pkg/vdom"
)

// Todo is one task of the list.
type Todo struct {
	ID   int
	Text string
	Done bool
}

// TodoList is a task list with an add form. Clicking a task toggles it.
func TodoList(props vdom.Props) *vdom.Element {
	todos, setTodos := fiber.UseState([]Todo(nil))
	input, setInput := fiber.UseState("")
	nextID, setNextID := fiber.UseState(1)

	add := func(host.Event) {
		text := strings.TrimSpace(input)
		if text == "" {
			return
		}
		next := make([]Todo, 0, len(todos)+1)
		next = append(next, todos...)
		setTodos(append(next, Todo{ID: nextID, Text: text}))
		setNextID(nextID + 1)
		setInput("")
	}
	toggle := func(id int) func() {
		return func() {
			next := make([]Todo, len(todos))
			for i, t := range todos {
				if t.ID == id {
					t.Done = !t.Done
				}
				next[i] = t
			}
			setTodos(next)
		}
	}
	remove := func(id int) func() {
		return func() {
			next := make([]Todo, 0, len(todos))
			for _, t := range todos {
				if t.ID != id {
					next = append(next, t)
				}
			}
			setTodos(next)
		}
	}

	remaining := 0
	for _, t := range todos {
		if !t.Done {
			remaining++
		}
	}

	return vdom.Div(vdom.Class("todo-container"),
		vdom.H2("To-Do List"),
		vdom.Form(vdom.Class("todo-form"), vdom.OnSubmit(add),
			vdom.Input(
				vdom.InputType("text"),
				vdom.Class("todo-input"),
				vdom.Placeholder("Add a new task..."),
				vdom.Value(input),
				vdom.OnInput(func(ev host.Event) { setInput(ev.Value) }),
			),
			vdom.Button(vdom.InputType("submit"), vdom.Class("todo-add"), "Add"),
		),
		vdom.IfElse(len(todos) == 0,
			vdom.P(vdom.Class("todo-empty"), "No tasks"),
			vdom.Ul(vdom.Class("todo-list"),
				vdom.Range(todos, func(_ int, t Todo) *vdom.Element {
					class := "todo-item"
					if t.Done {
						class = "todo-item completed"
					}
					return vdom.Li(vdom.Class(class),
						vdom.Span(vdom.Class("todo-text"), vdom.OnClick(toggle(t.ID)), t.Text),
						vdom.Button(vdom.Class("todo-delete"), vdom.OnClick(remove(t.ID)), "Delete"),
					)
				}),
			),
		),
		vdom.P(vdom.Class("todo-remaining"), vdom.Textf("%d remaining", remaining)),
	)
}
