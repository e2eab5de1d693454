package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/moneymanager/renderer"
	"github.com/google/subcommands"
)

func accountCmd() *group {
	return &group{
		name:     "account",
		synopsis: "manage accounts",
		usage: `mm account <add|edit|rm|ls> [flags]

  Manages the accounts: banks, cards, wallets.
`,
		commands: []subcommands.Command{&accountAddCmd{}, &accountEditCmd{}, &accountRmCmd{}, &accountLsCmd{}},
	}
}

type accountAddCmd struct {
	id    string
	icon  string
	color string
}

func (*accountAddCmd) Name() string     { return "add" }
func (*accountAddCmd) Synopsis() string { return "add an account" }
func (*accountAddCmd) Usage() string {
	return `mm account add [-id <id>] [-icon <icon>] [-color <#rrggbb>] <name>

  Adds an account with a zero balance. The id is derived from the name
  unless given.
`
}

func (c *accountAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Account id. Defaults to a slug of the name.")
	f.StringVar(&c.icon, "icon", "", "Icon name.")
	f.StringVar(&c.color, "color", "", "Hex color. Defaults to a palette color.")
}

func (c *accountAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("account add takes exactly one name, quote it if it has spaces.")
	}
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		a, err := s.AddAccount(f.Arg(0), c.icon, c.color, c.id)
		if err != nil {
			return fail(err)
		}
		fmt.Fprintf(stdout, "Added account %s (%s)\n", a.ID, a.Name)
		return subcommands.ExitSuccess
	})
}

type accountEditCmd struct {
	name  string
	icon  string
	color string
}

func (*accountEditCmd) Name() string     { return "edit" }
func (*accountEditCmd) Synopsis() string { return "rename or restyle an account" }
func (*accountEditCmd) Usage() string {
	return `mm account edit [-name <name>] [-icon <icon>] [-color <#rrggbb>] <id>

  Changes the name, icon or color of an account. Its id never changes.
`
}

func (c *accountEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "New name.")
	f.StringVar(&c.icon, "icon", "", "New icon.")
	f.StringVar(&c.color, "color", "", "New hex color.")
}

func (c *accountEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("account edit takes exactly one account id.")
	}
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		a, err := s.Account(f.Arg(0))
		if err != nil {
			return fail(err)
		}
		name := c.name
		if name == "" {
			name = a.Name
		}
		if a, err = s.EditAccount(a.ID, name, c.icon, c.color); err != nil {
			return fail(err)
		}
		fmt.Fprintf(stdout, "Updated account %s (%s)\n", a.ID, a.Name)
		return subcommands.ExitSuccess
	})
}

type accountRmCmd struct{}

func (*accountRmCmd) Name() string     { return "rm" }
func (*accountRmCmd) Synopsis() string { return "delete an account" }
func (*accountRmCmd) Usage() string {
	return `mm account rm <id>

  Deletes an account. Its transactions are kept under the "unknown" account
  and its balance is dropped. The last account cannot be deleted.
`
}

func (*accountRmCmd) SetFlags(*flag.FlagSet) {}

func (*accountRmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("account rm takes exactly one account id.")
	}
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		dropped, err := s.DeleteAccount(f.Arg(0))
		if err != nil {
			return fail(err)
		}
		fmt.Fprintf(stdout, "Deleted account %s, dropped balance %s\n", f.Arg(0), dropped.Format(s.Currency()))
		return subcommands.ExitSuccess
	})
}

type accountLsCmd struct{}

func (*accountLsCmd) Name() string     { return "ls" }
func (*accountLsCmd) Synopsis() string { return "list accounts and balances" }
func (*accountLsCmd) Usage() string {
	return `mm account ls

  Lists the accounts with their balance and the total.
`
}

func (*accountLsCmd) SetFlags(*flag.FlagSet) {}

func (*accountLsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		printMarkdown(renderer.AccountsMarkdown(s.Accounts(), s.Balances(), s.Currency()))
		return subcommands.ExitSuccess
	})
}
