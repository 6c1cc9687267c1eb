package main

import "github.com/VoxDroid/statussaver/cmd"

func main() {
	cmd.Execute()
}
