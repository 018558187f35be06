package main

import "github.com/OpenTraceLab/pinchzoom/cmd/pinchzoom/cmd"

func main() {
	cmd.Execute()
}
