package main

import (
	"github.com/mbarret/expertdesk/pkg/interfaces/cli/commands"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	commands.Execute(version)
}
