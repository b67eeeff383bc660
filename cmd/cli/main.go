package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"minoj/internal/cli/command"
	httpclient "minoj/internal/cli/http"
	"minoj/internal/cli/repl"
)

func main() {
	baseURL := flag.String("base", "http://127.0.0.1:12345", "Judge server base URL")
	timeout := flag.Duration("timeout", 30*time.Second, "HTTP timeout (e.g. 10s)")
	pretty := flag.Bool("pretty", false, "Pretty print JSON response")
	flag.Parse()

	client := httpclient.New(*baseURL, *timeout)
	session, err := repl.New(client, command.Registry(), *pretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start cli failed: %v\n", err)
		return
	}
	session.Run(context.Background())
}
