package main

import "github.com/xvierd/kicks-cli/cmd"

func main() {
	cmd.Execute()
}
