package cmd

import (
	"context"
	"flag"
	"strconv"
	"strings"

	"github.com/etnz/moneymanager/renderer"
	"github.com/google/subcommands"
)

type settingsCmd struct {
	theme         string
	accent        string
	currency      string
	view          string
	autoCreate    string
	notifications string
	widgets       string
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "show or change preferences" }
func (*settingsCmd) Usage() string {
	return `mm settings [flags]

  Changes the preferences given as flags, then shows them all.
  Widgets are toggled with -widgets name=on,name=off.
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.theme, "theme", "", "Theme: light, dark or system.")
	f.StringVar(&c.accent, "accent", "", "Accent color, like #4a90e2.")
	f.StringVar(&c.currency, "currency", "", "ISO code of the currency amounts are shown in.")
	f.StringVar(&c.view, "view", "", "View opened at start.")
	f.StringVar(&c.autoCreate, "autocreate", "", "Create due recurring transactions automatically: true or false.")
	f.StringVar(&c.notifications, "notify", "", "Report created recurring transactions: true or false.")
	f.StringVar(&c.widgets, "widgets", "", "Comma separated name=on|off dashboard widgets.")
}

func (c *settingsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(ctx, func(s *session) subcommands.ExitStatus {
		var updates []func() error
		if c.theme != "" {
			updates = append(updates, func() error { return s.SetTheme(c.theme) })
		}
		if c.accent != "" {
			updates = append(updates, func() error { return s.SetAccentColor(c.accent) })
		}
		if c.currency != "" {
			updates = append(updates, func() error { return s.SetCurrency(strings.ToUpper(c.currency)) })
		}
		if c.view != "" {
			updates = append(updates, func() error { return s.SetDefaultView(c.view) })
		}
		if c.autoCreate != "" {
			on, err := strconv.ParseBool(c.autoCreate)
			if err != nil {
				return usageError("invalid -autocreate %q", c.autoCreate)
			}
			updates = append(updates, func() error { return s.SetAutoCreate(on) })
		}
		if c.notifications != "" {
			on, err := strconv.ParseBool(c.notifications)
			if err != nil {
				return usageError("invalid -notify %q", c.notifications)
			}
			updates = append(updates, func() error { return s.SetNotifications(on) })
		}
		for _, w := range splitList(c.widgets) {
			name, state, ok := strings.Cut(w, "=")
			if !ok || state != "on" && state != "off" {
				return usageError("invalid widget %q, want name=on or name=off", w)
			}
			updates = append(updates, func() error { return s.SetWidget(name, state == "on") })
		}

		for _, update := range updates {
			if err := update(); err != nil {
				return fail(err)
			}
		}
		printMarkdown(renderer.SettingsMarkdown(s.Settings()))
		return subcommands.ExitSuccess
	})
}
