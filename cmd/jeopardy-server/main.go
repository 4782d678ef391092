package main

import "github.com/oshokin/jeopardy/cmd/jeopardy-server/cmd"

func main() {
	cmd.Execute()
}
