package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Supported subcommands:
// - register: Create an account and print it with a signed token
// - hash:     Print the digest of a password for a given salt

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: account <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  register    Register an account and issue a token")
	fmt.Fprintln(w, "  hash        Hash a password with a given salt")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "The password is prompted for on a terminal, or read from the first line of stdin.")
	fmt.Fprintln(w, "Use 'account <command> -h' for more information about a command.")
}
