// Command mm manages a personal ledger: accounts, transactions, bills,
// budgets and recurring transactions.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/moneymanager/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	cmd.Complete("mm", commander)
	flag.Parse()

	// unknown commands are looked up as mm-<command> extensions.
	if name := flag.Arg(0); name != "" && !known(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func known(commander *subcommands.Commander, name string) bool {
	found := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		found = found || c.Name() == name
	})
	return found
}
