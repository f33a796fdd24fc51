package main

import (
	"fmt"
	"os"
	"strings"

	"blogsite/service"
)

const CliVersion = "1.0.0"

var exit = os.Exit

// commands are handed to the service package.
var commands = map[string]bool{
	"serve":   true,
	"init":    true,
	"clean":   true,
	"backup":  true,
	"restore": true,
	"seed":    true,
}

func main() {
	RealMain()
}

func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch {
	case cmd == "help":
		printHelp()
	case cmd == "version":
		fmt.Printf("blogsite version %s\n", CliVersion)
	case commands[cmd]:
		args := append([]string{cmd}, os.Args[2:]...)
		if code := service.HandleCommand(args); code != 0 {
			exit(code)
		}
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	service.PrintHelp()
}
