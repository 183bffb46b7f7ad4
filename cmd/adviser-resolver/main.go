// Command adviser-resolver drives one resolver run, either directly or as
// an isolated worker child. Grounded on cmd/dep/main.go's command
// interface and Config.Run() pattern.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
)

type command interface {
	Name() string
	Args() string
	ShortHelp() string
	LongHelp() string
	Register(fs *flag.FlagSet)
	Hidden() bool
	Run(args []string) error
}

func main() {
	c := &Config{
		Args:   os.Args,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(c.Run())
}

// Config specifies a full configuration for an adviser-resolver execution.
type Config struct {
	Args           []string
	Stdout, Stderr io.Writer
}

// Run executes a configuration and returns an exit code.
func (c *Config) Run() (exitCode int) {
	commands := []command{
		&resolveCommand{},
		&workerCommand{},
		&versionCommand{},
	}

	errLogger := log.New(c.Stderr, "", 0)

	usage := func() {
		errLogger.Println("adviser-resolver runs the beam-driven dependency resolution engine")
		errLogger.Println()
		errLogger.Println("Usage: adviser-resolver <command>")
		errLogger.Println()
		errLogger.Println("Commands:")
		errLogger.Println()
		w := tabwriter.NewWriter(c.Stderr, 0, 4, 2, ' ', 0)
		for _, cmd := range commands {
			if !cmd.Hidden() {
				fmt.Fprintf(w, "\t%s\t%s\n", cmd.Name(), cmd.ShortHelp())
			}
		}
		w.Flush()
	}

	if len(c.Args) <= 1 {
		usage()
		return 1
	}

	name := c.Args[1]
	for _, cmd := range commands {
		if cmd.Name() != name {
			continue
		}

		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		cmd.Register(fs)
		if err := fs.Parse(c.Args[2:]); err != nil {
			return 1
		}

		if err := cmd.Run(fs.Args()); err != nil {
			fmt.Fprintf(c.Stderr, "%v\n", err)
			return 1
		}
		return 0
	}

	fmt.Fprintf(c.Stderr, "%s: no such command\n", name)
	usage()
	return 1
}
