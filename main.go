package main

import "github.com/jhrncar/wattdash/cmd"

func main() {
	cmd.Execute()
}
