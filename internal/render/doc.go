// Package render draws board snapshots.
//
// HTML renders the browser page and the board table fragment: one header cell
// per category, one row per clue slot, each cell addressable by its
// (category, clue) pair. Terminal prints a colored grid for the CLI client.
package render
