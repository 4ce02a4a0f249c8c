package main

import "github.com/emiliopalmerini/dwstyles/internal/cli"

func main() {
	cli.Execute()
}
