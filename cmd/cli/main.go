package main

import "github.com/angelospk/mediasort/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
