// cmd/main.go
package main

import cmd "github.com/mwiater/jsonviewbench/cmd/jsonviewbench"

// main starts the jsonviewbench CLI application by delegating to the
// cobra root command defined in the jsonviewbench package.
func main() {
	cmd.Execute()
}
