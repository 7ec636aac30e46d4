package main

import "github.com/josephlewis42/rsh/cmd"

func main() {
	cmd.Execute()
}
