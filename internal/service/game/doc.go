// Package game runs the game setup sequence and dispatches clue reveals.
//
// Service owns the board model and the NotStarted/Loading/Ready status. Setup
// fetches categories one by one and installs the board all at once; a failure
// leaves the previous board in place.
package game
