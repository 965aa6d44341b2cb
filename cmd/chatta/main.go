package main

import "github.com/chattatrader/chattacli/internal/commands"

func main() {
	commands.Execute()
}
