package main

import "github.com/oshokin/jeopardy/cmd/jeopardy/cmd"

func main() {
	cmd.Execute()
}
