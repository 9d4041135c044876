// Package main is the entry point for the actifly admin CLI.
package main

import "github.com/actifly/api/cmd/actifly/cmd"

func main() {
	cmd.Execute()
}
