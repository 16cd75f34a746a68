package main

import "github.com/Travis-Prall/court-listener-mcp/cmd"

// version can be set during build with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
