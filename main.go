package main

import "px/cmd"

func main() {
	cmd.Execute()
}
