// Package steps defines the declarative step graph a wizard walks through.
//
// A [Graph] is an immutable set of steps keyed by ID with a designated
// initial step. Steps come in three concrete shapes behind the sealed [Step]
// interface, discriminated by [Kind]:
//
//   - [Question]: ordered options, each carrying its own transition target.
//   - [Instruction]: static content or an input form, one static transition
//     (KindInstruction or KindCustom depending on [ContentKind]).
//   - [Result]: terminal, no outgoing transition.
//
// Graphs are validated once by [NewGraph]; everything downstream assumes a
// valid graph.
package steps
