package main

import "orbital/internal/cmd"

func main() {
	cmd.Execute()
}
