package main

import "github.com/oxmmty/botmint/cmd"

func main() {
	cmd.Execute()
}
