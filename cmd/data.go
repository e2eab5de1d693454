package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/moneymanager/backup"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the ledger as JSON" }
func (*exportCmd) Usage() string {
	return `mm export [-o <file>]

  Writes the whole ledger document, indented, to a file or to stdout.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to stdout.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		if c.output == "" {
			if err := s.Export(stdout); err != nil {
				return fail(err)
			}
			return subcommands.ExitSuccess
		}
		f, err := os.Create(c.output)
		if err != nil {
			return fail(err)
		}
		if err := s.Export(f); err != nil {
			f.Close()
			return fail(err)
		}
		if err := f.Close(); err != nil {
			return fail(err)
		}
		fmt.Fprintf(os.Stderr, "Exported to %s\n", c.output)
		return subcommands.ExitSuccess
	})
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the ledger with an exported one" }
func (*importCmd) Usage() string {
	return `mm import <file>

  Replaces the whole ledger with an exported document. Use - to read stdin.
  A file without balances or transactions is rejected and nothing changes.
`
}
func (*importCmd) SetFlags(*flag.FlagSet) {}

func (*importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("import takes exactly one file.")
	}
	var r io.Reader = os.Stdin
	if name := f.Arg(0); name != "-" {
		file, err := os.Open(name)
		if err != nil {
			return fail(err)
		}
		defer file.Close()
		r = file
	}
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		if err := s.Import(r); err != nil {
			return fail(err)
		}
		fmt.Fprintf(stdout, "Imported %d transactions in %d accounts\n", len(s.Document().Transactions), len(s.Accounts()))
		return subcommands.ExitSuccess
	})
}

type resetCmd struct {
	yes bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "erase the ledger" }
func (*resetCmd) Usage() string {
	return `mm reset -yes

  Replaces the ledger with the default one. Everything is lost, export it first.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Confirm the reset.")
}

func (c *resetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		return usageError("reset erases everything, confirm with -yes.")
	}
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		s.Reset()
		fmt.Fprintln(stdout, "Ledger reset")
		return subcommands.ExitSuccess
	})
}

type verifyCmd struct{}

func (*verifyCmd) Name() string     { return "verify" }
func (*verifyCmd) Synopsis() string { return "check the ledger consistency" }
func (*verifyCmd) Usage() string {
	return `mm verify

  Checks that every balance matches its transactions and that the pinned
  index matches the pinned transactions.
`
}
func (*verifyCmd) SetFlags(*flag.FlagSet) {}

func (*verifyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		if err := s.Verify(); err != nil {
			return fail(err)
		}
		fmt.Fprintln(stdout, "Ledger is consistent")
		return subcommands.ExitSuccess
	})
}

// openTarget returns the configured backup target and the function
// releasing it.
func openTarget(ctx context.Context, c Config) (backup.Target, func() error, error) {
	if c.Backup.Bucket == "" {
		return backup.Dir(c.Backup.Dir), func() error { return nil }, nil
	}
	g, err := backup.OpenGCS(ctx, c.Backup.Bucket, c.Backup.Prefix)
	if err != nil {
		return nil, nil, err
	}
	return g, g.Close, nil
}

type backupCmd struct{}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "back the ledger up" }
func (*backupCmd) Usage() string {
	return `mm backup

  Copies the ledger to the backup target, named after today's date: the
  Google Cloud Storage bucket backup.bucket when set, the backup.dir folder
  otherwise.
`
}
func (*backupCmd) SetFlags(*flag.FlagSet) {}

func (*backupCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		t, release, err := openTarget(ctx, s.config)
		if err != nil {
			return fail(err)
		}
		defer release()
		name, err := backup.Backup(ctx, s.Ledger, t)
		if err != nil {
			return fail(err)
		}
		fmt.Fprintf(stdout, "Backed up to %s\n", name)
		return subcommands.ExitSuccess
	})
}

type restoreCmd struct{}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "replace the ledger with a backup" }
func (*restoreCmd) Usage() string {
	return `mm restore <name>

  Replaces the ledger with a backup from the backup target, like
  money-manager-backup-2025-03-20.json.
`
}
func (*restoreCmd) SetFlags(*flag.FlagSet) {}

func (*restoreCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("restore takes exactly one backup name.")
	}
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		t, release, err := openTarget(ctx, s.config)
		if err != nil {
			return fail(err)
		}
		defer release()
		if err := backup.Restore(ctx, s.Ledger, t, f.Arg(0)); err != nil {
			return fail(err)
		}
		fmt.Fprintf(stdout, "Restored %s\n", f.Arg(0))
		return subcommands.ExitSuccess
	})
}
