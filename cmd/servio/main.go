package main

import "github.com/avencia/servio/internal/cli/cmd"

func main() {
	cmd.Execute()
}
