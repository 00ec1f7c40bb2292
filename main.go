package main

import "github.com/sajjad-MoBe/fetchprobe/cmd"

func main() {
	cmd.Execute()
}
