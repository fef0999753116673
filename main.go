// Package main is the entry point for the cisolate CLI.
package main

import "github.com/cisolate/cisolate/cmd"

func main() {
	cmd.Execute()
}
