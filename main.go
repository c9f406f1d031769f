package main

import "github.com/theirongolddev/fivehundred/cmd"

func main() {
	cmd.Execute()
}
