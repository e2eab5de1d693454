package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/moneymanager"
	"github.com/etnz/moneymanager/date"
	"github.com/etnz/moneymanager/renderer"
	"github.com/google/subcommands"
)

// nameCmd is a sub command taking a single name, like "mm tag add work".
type nameCmd struct {
	name     string
	synopsis string
	usage    string
	run      func(s *session, name string) error
	done     string
}

func (c *nameCmd) Name() string           { return c.name }
func (c *nameCmd) Synopsis() string       { return c.synopsis }
func (c *nameCmd) Usage() string          { return c.usage }
func (c *nameCmd) SetFlags(*flag.FlagSet) {}

func (c *nameCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.Join(f.Args(), " ")
	if strings.TrimSpace(name) == "" {
		return usageError("a name is required.")
	}
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		if err := c.run(s, name); err != nil {
			return fail(err)
		}
		fmt.Fprintf(stdout, c.done+"\n", name)
		return subcommands.ExitSuccess
	})
}

// taxonomyLsCmd lists categories, budgets and tags.
type taxonomyLsCmd struct{}

func (*taxonomyLsCmd) Name() string     { return "ls" }
func (*taxonomyLsCmd) Synopsis() string { return "list categories and tags" }
func (*taxonomyLsCmd) Usage() string {
	return `ls

  Lists the categories with their monthly budget, and the tags.
`
}
func (*taxonomyLsCmd) SetFlags(*flag.FlagSet) {}

func (*taxonomyLsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		printMarkdown(renderer.TaxonomyMarkdown(s.Categories(), s.Tags(), s.Budgets(), s.Currency()))
		return subcommands.ExitSuccess
	})
}

func categoryCmd() *group {
	return &group{
		name:     "category",
		synopsis: "manage categories",
		usage: `mm category <add|rm|ls> [<name>]

  Manages the categories. Deleting a category moves its transactions and
  bills to "Other".
`,
		commands: []subcommands.Command{
			&nameCmd{
				name:     "add",
				synopsis: "add a category",
				usage:    "mm category add <name>\n",
				run:      func(s *session, name string) error { return s.AddCategory(name) },
				done:     "Added category %q",
			},
			&nameCmd{
				name:     "rm",
				synopsis: "delete a category",
				usage:    "mm category rm <name>\n",
				run:      func(s *session, name string) error { return s.DeleteCategory(name) },
				done:     "Deleted category %q",
			},
			&taxonomyLsCmd{},
		},
	}
}

func tagCmd() *group {
	return &group{
		name:     "tag",
		synopsis: "manage tags",
		usage: `mm tag <add|rm|ls> [<name>]

  Manages the tags. Deleting a tag removes it from every transaction.
`,
		commands: []subcommands.Command{
			&nameCmd{
				name:     "add",
				synopsis: "add a tag",
				usage:    "mm tag add <name>\n",
				run:      func(s *session, name string) error { return s.AddTag(name) },
				done:     "Added tag %q",
			},
			&nameCmd{
				name:     "rm",
				synopsis: "delete a tag",
				usage:    "mm tag rm <name>\n",
				run:      func(s *session, name string) error { return s.DeleteTag(name) },
				done:     "Deleted tag %q",
			},
			&taxonomyLsCmd{},
		},
	}
}

func budgetCmd() *group {
	return &group{
		name:     "budget",
		synopsis: "set and follow monthly budgets",
		usage: `mm budget <set|show> [flags]

  Manages the monthly spending cap of each category.
`,
		commands: []subcommands.Command{&budgetSetCmd{}, &budgetShowCmd{}},
	}
}

type budgetSetCmd struct{}

func (*budgetSetCmd) Name() string     { return "set" }
func (*budgetSetCmd) Synopsis() string { return "set the monthly budget of a category" }
func (*budgetSetCmd) Usage() string {
	return `mm budget set <category> <amount>

  Sets the monthly cap of a category. Zero removes it.
`
}
func (*budgetSetCmd) SetFlags(*flag.FlagSet) {}

func (*budgetSetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		return usageError("budget set takes a category and an amount.")
	}
	args := f.Args()
	category := strings.Join(args[:len(args)-1], " ")
	limit, err := moneymanager.ParseMoney(args[len(args)-1])
	if err != nil {
		return usageError("%v", err)
	}
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		if err := s.SetBudget(category, limit); err != nil {
			return fail(err)
		}
		fmt.Fprintf(stdout, "Budget of %q set to %s\n", category, limit.Format(s.Currency()))
		return subcommands.ExitSuccess
	})
}

type budgetShowCmd struct {
	date string
}

func (*budgetShowCmd) Name() string     { return "show" }
func (*budgetShowCmd) Synopsis() string { return "show the budget progress of a month" }
func (*budgetShowCmd) Usage() string {
	return `mm budget show [-d <date>]

  Shows the expenses of the month containing the date against each budget.
`
}

func (c *budgetShowCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "A date in the month to show. Defaults to today.")
}

func (c *budgetShowCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		day := s.Today()
		if c.date != "" {
			var err error
			if day, err = date.Parse(c.date); err != nil {
				return usageError("%v", err)
			}
		}
		printMarkdown(renderer.BudgetsMarkdown(day, s.BudgetProgress(day), s.Currency()))
		return subcommands.ExitSuccess
	})
}
