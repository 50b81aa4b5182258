package main

import "github.com/skilldoctor/skilldoctor/cmd"

func main() {
	cmd.Execute()
}
