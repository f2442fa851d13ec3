package main

import "fbgrab/cmd"

func main() {
	cmd.Execute()
}
