package main

import "fandomhub/cmd/cli/command"

func main() {
	command.Execute()
}
