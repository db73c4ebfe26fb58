package main

import "github.com/Jayarmananan1994/notifyme/internal/cli"

func main() {
	cli.Execute()
}
