package main

import (
	"birdwatch/cmd/birdwatch/commands"
	"birdwatch/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
