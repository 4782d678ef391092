// Package trivia talks to a jservice-compatible trivia API.
//
// Client is both the category source (random category identifiers drawn from
// the catalog) and the category loader (a title plus a random subset of clues).
// Sampling is uniform and without replacement.
package trivia
