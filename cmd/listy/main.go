package main

import (
	"listy/cmd/listy/commands"
)

func main() {
	commands.Execute()
}
