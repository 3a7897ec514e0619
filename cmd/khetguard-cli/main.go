package main

import "github.com/khetguard/khetguard/cmd/khetguard-cli/cmd"

func main() {
	cmd.Execute()
}
