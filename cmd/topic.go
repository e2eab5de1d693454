package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/moneymanager/docs"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read the mm documentation" }
func (*topicCmd) Usage() string {
	return `topic [-l] [<topic>...]

Show the documentation topics, the index when none is given.
'*' shows every topic.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "l", false, "list the topics and their titles")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		topics, err := docs.Topics()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing topics: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(topicsMarkdown(topics))
		return subcommands.ExitSuccess
	}

	doc, err := docs.Read(f.Args()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}

func topicsMarkdown(topics []docs.Topic) string {
	doc := md.NewMarkdown(&bytes.Buffer{})
	doc.H1("Topics")
	table := md.TableSet{Header: []string{"Topic", "Title"}}
	for _, t := range topics {
		table.Rows = append(table.Rows, []string{"`" + t.Name + "`", t.Title})
	}
	doc.Table(table)
	return doc.String()
}
