package renderer

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/moneymanager"
	md "github.com/nao1215/markdown"
)

// TaxonomyMarkdown renders the categories with their budgets, and the tags.
func TaxonomyMarkdown(categories, tags []string, budgets map[string]moneymanager.Money, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Categories")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Category", "Monthly Budget"},
	}
	for _, c := range categories {
		budget := ""
		if b, ok := budgets[c]; ok && b.IsPositive() {
			budget = b.Format(currency)
		}
		table.Rows = append(table.Rows, []string{cell(c), budget})
	}
	doc.Table(table)

	doc.H2("Tags")
	if len(tags) == 0 {
		doc.PlainText("No tags.")
	} else {
		tags = slices.Clone(tags)
		slices.Sort(tags)
		doc.PlainText(strings.Join(tags, ", "))
	}
	return doc.String()
}

// SettingsMarkdown renders the user preferences.
func SettingsMarkdown(s moneymanager.Settings) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Settings")

	backup := "never"
	if s.Backup.GoogleDrive.LastBackup != nil {
		backup = s.Backup.GoogleDrive.LastBackup.Format("2006-01-02 15:04 MST")
	}
	rows := [][]string{
		{"Currency", s.Currency},
		{"Theme", s.Theme},
		{"Accent color", s.AccentColor},
		{"Default view", s.Dashboard.DefaultView},
		{"Create recurring transactions", onOff(s.Recurring.AutoCreate)},
		{"Notify created transactions", onOff(s.Recurring.Notifications)},
		{"Last backup", backup},
	}
	var names []string
	for name := range s.Dashboard.Widgets {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		rows = append(rows, []string{fmt.Sprintf("Widget %s", name), onOff(s.Dashboard.Widgets[name])})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft},
		Header:    []string{"Setting", "Value"},
		Rows:      rows,
	})
	doc.PlainText(md.Italic("document version " + s.Version))
	return doc.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
