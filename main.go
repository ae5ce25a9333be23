package main

import "github.com/user/clip-browser/cmd"

func main() {
	cmd.Execute()
}
