package main

import "skyseat-cli/cmd"

func main() {
	cmd.Execute()
}
