package main

import "github.com/chunksplit/chunksplit/cmd"

func main() {
	cmd.Execute()
}
