// Package board contains the core domain types for the trivia board.
//
// It defines Clue, Category and Board, the RevealState enumeration with the
// pure Reveal transition, and Model, the owner of the single installed board.
package board
