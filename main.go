package main

import "github.com/lumen-social/cli/internal/cmd"

func main() {
	cmd.Execute()
}
