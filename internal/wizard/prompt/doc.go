// Package prompt drives a wizard engine from a terminal.
//
// Run maps each step onto a Prompter: questions become a single select,
// instruction and custom steps become a form of their fields, and the loop
// ends when the engine reaches a result step. Terminal implements Prompter
// with huh forms; tests use scripted prompters.
package prompt
