// Package demo contains the applications served by "weft serve" and printed
// by "weft render". They double as end-to-end exercises of the engine: the
// playlist drives effects and error fallbacks, the task list drives list
// growth and shrinkage with form events, and tic-tac-toe is a stateful
// component updated through SetState merges.
package demo
