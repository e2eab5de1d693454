package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/moneymanager"
	"github.com/etnz/moneymanager/suggest"
	"github.com/google/subcommands"
)

// newSuggester learns from the ledger transactions, then asks Gemini when
// it is enabled in the config.
func newSuggester(ctx context.Context, s *session) suggest.Suggester {
	chain := suggest.Chain{suggest.NewFuzzy(s.List(moneymanager.ListOptions{}))}
	if s.config.Suggest.Gemini {
		g, err := suggest.NewGemini(ctx, s.config.Suggest.Model)
		if err != nil {
			s.logger.Warn("gemini is not available", "err", err)
			return chain
		}
		chain = append(chain, g)
	}
	return chain
}

type suggestCmd struct{}

func (*suggestCmd) Name() string     { return "suggest" }
func (*suggestCmd) Synopsis() string { return "suggest the category of a description" }
func (*suggestCmd) Usage() string {
	return `mm suggest <description>

  Suggests a category for a transaction description, from similar past
  transactions, or from Gemini when suggest.gemini is enabled (the API key is
  read from GEMINI_API_KEY).
`
}
func (*suggestCmd) SetFlags(*flag.FlagSet) {}

func (*suggestCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	description := strings.Join(f.Args(), " ")
	if strings.TrimSpace(description) == "" {
		return usageError("a description is required.")
	}
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		sug, err := newSuggester(ctx, s).Suggest(ctx, description, s.Categories())
		if err != nil {
			return fail(err)
		}
		fmt.Fprintf(stdout, "%s (%.0f%%, %s)\n", sug.Category, sug.Confidence*100, sug.Reason)
		return subcommands.ExitSuccess
	})
}
