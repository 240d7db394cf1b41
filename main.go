package main

import "github.com/alde/bitcam/cmd"

func main() {
	cmd.Execute()
}
