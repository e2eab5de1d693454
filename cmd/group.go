package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

// group is a command made of sub commands, like "mm account add".
type group struct {
	name     string
	synopsis string
	usage    string
	commands []subcommands.Command
}

func (g *group) Name() string     { return g.name }
func (g *group) Synopsis() string { return g.synopsis }
func (g *group) Usage() string    { return g.usage }

func (g *group) SetFlags(*flag.FlagSet) {}

func (g *group) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	c := subcommands.NewCommander(f, "mm "+g.name)
	c.Register(c.HelpCommand(), "")
	for _, sub := range g.commands {
		c.Register(sub, "")
	}
	return c.Execute(ctx, args...)
}
