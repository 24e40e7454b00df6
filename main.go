package main

import "github.com/jjenkins/civiq/cmd"

func main() {
	cmd.Execute()
}
