package main

import "github.com/Sai-Roopesh/becomeAnAuthor-sub003/cmd"

func main() {
	cmd.Execute()
}
