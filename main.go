package main

import "github.com/jfmyers9/srfsongs/cmd"

func main() {
	cmd.Execute()
}
