package main

import "applytrack/cmd/client/cmd"

func main() {
	cmd.Execute()
}
