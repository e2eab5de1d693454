package cmd

import (
	"context"
	"flag"

	"github.com/etnz/moneymanager"
	"github.com/etnz/moneymanager/docs"
	"github.com/etnz/moneymanager/storage"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// fromLedger predicts words read from the stored ledger. Nothing is
// predicted when it cannot be loaded.
func fromLedger(words func(l *moneymanager.Ledger) []string) complete.PredictFunc {
	return func(string) []string {
		c, err := LoadConfig()
		if err != nil {
			return nil
		}
		store, release, err := openStore(c)
		if err != nil {
			return nil
		}
		defer release()
		l, err := storage.Open(context.Background(), store, moneymanager.WithLogger(newLogger(Config{Log: LogConfig{Level: "fatal"}})))
		if err != nil {
			return nil
		}
		return words(l)
	}
}

var (
	predictAccounts = fromLedger(func(l *moneymanager.Ledger) []string {
		ids := []string{moneymanager.All}
		for _, a := range l.Accounts() {
			ids = append(ids, a.ID)
		}
		return ids
	})
	predictCategories   = fromLedger(func(l *moneymanager.Ledger) []string { return l.Categories() })
	predictTransactions = fromLedger(func(l *moneymanager.Ledger) []string {
		var ids []string
		for _, tx := range l.List(moneymanager.ListOptions{}) {
			ids = append(ids, tx.ID)
		}
		return ids
	})
	predictBills = fromLedger(func(l *moneymanager.Ledger) []string {
		var ids []string
		for _, b := range l.Bills() {
			ids = append(ids, b.ID)
		}
		return ids
	})
	predictSchedules = fromLedger(func(l *moneymanager.Ledger) []string {
		var keys []string
		for _, s := range l.Schedules() {
			keys = append(keys, s.Key())
		}
		return keys
	})
	predictTopics = complete.PredictFunc(func(string) []string { return docs.Names() })
	predictPeriods = predict.Set{"day", "week", "month", "quarter", "year"}
)

func orders() predict.Set {
	var s predict.Set
	for _, o := range moneymanager.Orders {
		s = append(s, string(o))
	}
	return s
}

func frequencies() predict.Set {
	var s predict.Set
	for _, f := range moneymanager.Frequencies {
		s = append(s, string(f))
	}
	return s
}

// flagPredictor returns the predictor of a flag of the command path, like
// "bill add".
func flagPredictor(path, name string) complete.Predictor {
	switch {
	case name == "o" && path == "export":
		return predict.Files("*")
	case name == "config" || name == "data" || name == "attach":
		return predict.Files("*")
	case name == "a":
		return predictAccounts
	case name == "c":
		return predictCategories
	case name == "type":
		return predict.Set{string(moneymanager.Expense), string(moneymanager.Income), moneymanager.All}
	case name == "o":
		return orders()
	case name == "f":
		return frequencies()
	case name == "p" || name == "span":
		return predictPeriods
	case name == "repeat":
		return predict.Set{"none", "monthly", "quarterly", "yearly"}
	case name == "backend":
		return predict.Set(Backends)
	case name == "theme":
		return predict.Set(moneymanager.Themes)
	default:
		return predict.Something
	}
}

// argsPredictor returns the predictor of the arguments of the command path.
func argsPredictor(path string) complete.Predictor {
	switch path {
	case "edit", "rm", "pin", "show":
		return predictTransactions
	case "bill edit", "bill rm", "bill pay":
		return predictBills
	case "recurring toggle", "recurring rm":
		return predictSchedules
	case "account edit", "account rm":
		return predictAccounts
	case "category rm", "budget set":
		return predictCategories
	case "import":
		return predict.Files("*.json")
	case "topic":
		return predictTopics
	default:
		return predict.Nothing
	}
}

// completion describes a command, its flags and its sub commands.
func completion(path string, c subcommands.Command) *complete.Command {
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	cc := &complete.Command{Flags: make(map[string]complete.Predictor), Args: argsPredictor(path)}
	f.VisitAll(func(fl *flag.Flag) { cc.Flags[fl.Name] = flagPredictor(path, fl.Name) })

	if g, ok := c.(*group); ok {
		cc.Sub = make(map[string]*complete.Command)
		for _, sub := range g.commands {
			cc.Sub[sub.Name()] = completion(path+" "+sub.Name(), sub)
		}
	}
	return cc
}

// Complete answers the shell completion requests for the commands of cdr.
// When the shell asks for completions it prints them and exits, otherwise
// it returns. Run "COMP_INSTALL=1 mm" to install the completion in the shell.
func Complete(name string, cdr *subcommands.Commander) {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: make(map[string]complete.Predictor),
	}
	flag.CommandLine.VisitAll(func(fl *flag.Flag) { root.Flags[fl.Name] = flagPredictor("", fl.Name) })
	cdr.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		root.Sub[c.Name()] = completion(c.Name(), c)
	})
	root.Complete(name)
}
