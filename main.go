package main

import "github.com/slatebar/slatebar/cmd"

func main() {
	cmd.Execute()
}
