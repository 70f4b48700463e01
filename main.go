package main

import "facepairs/cmd"

func main() {
	cmd.Execute()
}
