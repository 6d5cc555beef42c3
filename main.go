package main

import cmd "github.com/seipan/bst/cmd/bst"

func main() {
	cmd.Execute()
}
