package main

import (
	"fmt"
	"os"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "new":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: kodaklens new <dir>")
			os.Exit(1)
		}
		err = runNew(os.Args[2])
	case "score":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: kodaklens score <results.json>")
			os.Exit(1)
		}
		err = runScore(os.Stdout, os.Args[2])
	case "version":
		fmt.Printf("kodaklens %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`kodaklens - turn photos into SEO-optimized visual stories

Usage:
  kodaklens <command> [arguments]

Commands:
  serve [-config file]   Run the web server (settings from env and optional config file)
  new <dir>              Create a project directory with starter stories and settings
  score <results.json>   Print the SEO, accessibility and overall scores of a results file
  version                Print the kodaklens version
  help                   Show this help message

Examples:
  SESSION_SECRET=dev kodaklens serve
  kodaklens new my-photos
  kodaklens score reports/sample-story.json`)
}
