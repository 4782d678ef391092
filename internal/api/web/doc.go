// Package web serves the browser UI of the trivia board.
//
// The router is built on chi. It serves the page, the start/restart trigger
// (POST /game, answering with the board table fragment), the click surface
// (POST /reveal) and a JSON view of the board.
package web
