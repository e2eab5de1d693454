package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/etnz/moneymanager/date"
	"github.com/google/subcommands"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"food", []string{"food"}},
		{" food , travel,,", []string{"food", "travel"}},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDateRange(t *testing.T) {
	today := date.New(2025, 3, 20)
	tests := []struct {
		name               string
		period, start, end string
		want               date.Range
		ok                 bool
		wantErr            bool
	}{
		{name: "no flags"},
		{name: "month", period: "month", want: date.Range{From: date.New(2025, 3, 1), To: date.New(2025, 3, 31)}, ok: true},
		{name: "year of end", period: "year", end: "2024-06-01", want: date.Range{From: date.New(2024, 1, 1), To: date.New(2024, 12, 31)}, ok: true},
		{name: "custom", period: "month", start: "2025-01-15", want: date.Range{From: date.New(2025, 1, 15), To: today}, ok: true},
		{name: "until", end: "2025-02-01", want: date.Range{To: date.New(2025, 2, 1)}, ok: true},
		{name: "bad period", period: "decade", wantErr: true},
		{name: "bad start", start: "yesterday", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := dateRange(tt.period, tt.start, tt.end, today)
			if (err != nil) != tt.wantErr {
				t.Fatalf("dateRange() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if ok != tt.ok || got != tt.want {
				t.Errorf("dateRange() = %v, %v, want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	setGlobals(t, "", "")

	c, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if c.Data.Backend != "file" || filepath.Base(c.Data.Path) != "ledger.json" {
		t.Errorf("default data = %+v, want file ledger.json", c.Data)
	}
	if c.Log.Level != "warn" {
		t.Errorf("default log.level = %q, want warn", c.Log.Level)
	}

	t.Setenv("MM_DATA_BACKEND", "sqlite")
	if c, err = LoadConfig(); err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if c.Data.Backend != "sqlite" || filepath.Base(c.Data.Path) != "ledger.db" {
		t.Errorf("env data = %+v, want sqlite ledger.db", c.Data)
	}

	file := filepath.Join(t.TempDir(), "mm.toml")
	config := "[data]\npath = \"/tmp/books.db\"\n\n[backup]\nbucket = \"my-bucket\"\n"
	if err := os.WriteFile(file, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}
	*configFile = file
	*verbose = true
	if c, err = LoadConfig(); err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if c.Data.Path != "/tmp/books.db" || c.Backup.Bucket != "my-bucket" || c.Log.Level != "debug" {
		t.Errorf("LoadConfig() = %+v, want the config file values and debug logs", c)
	}

	*dataBackend = "csv"
	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() with backend csv succeeded, want an error")
	}

	*dataBackend = ""
	*configFile = filepath.Join(t.TempDir(), "missing.toml")
	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() with a missing config file succeeded, want an error")
	}
}

var addedID = regexp.MustCompile(`^Added (\S+):`)

func TestTransactionCommands(t *testing.T) {
	for _, backend := range Backends {
		t.Run(backend, func(t *testing.T) {
			setGlobals(t, filepath.Join(t.TempDir(), "ledger"), backend)

			mustRun(t, "settings", "-currency", "usd")
			out := mustRun(t, "add", "-a", "cash", "-c", "Food", "-tags", "morning", "12.50", "Coffee", "shop")
			m := addedID.FindStringSubmatch(out)
			if m == nil {
				t.Fatalf("add printed %q, want Added <id>:", out)
			}
			id := m[1]
			if want := "Coffee shop -$12.50"; !strings.Contains(out, want) {
				t.Errorf("add printed %q, want %q", out, want)
			}

			if out := mustRun(t, "ls", "-a", "cash"); !strings.Contains(out, "Coffee shop") || !strings.Contains(out, id) {
				t.Errorf("ls does not list the transaction:\n%s", out)
			}
			if out := mustRun(t, "ls", "-a", "revolut"); strings.Contains(out, "Coffee shop") {
				t.Errorf("ls -a revolut lists a cash transaction:\n%s", out)
			}
			if out := mustRun(t, "search", "coffee"); !strings.Contains(out, id) {
				t.Errorf("search does not find the transaction:\n%s", out)
			}
			if out := mustRun(t, "pin", id); out != "Pinned "+id+"\n" {
				t.Errorf("pin printed %q", out)
			}
			if out := mustRun(t, "edit", "-amount", "20", "-notes", "with a croissant", id); !strings.Contains(out, "with a croissant") {
				t.Errorf("edit does not show the notes:\n%s", out)
			}

			out = mustRun(t, "query", "$.transactions[0].amount")
			var amount float64
			if err := json.Unmarshal([]byte(out), &amount); err != nil || amount != 20 {
				t.Errorf("query amount = %q, want 20", out)
			}
			if out := mustRun(t, "verify"); out != "Ledger is consistent\n" {
				t.Errorf("verify printed %q", out)
			}
			if out := mustRun(t, "rm", id); out != "Deleted "+id+"\n" {
				t.Errorf("rm printed %q", out)
			}
			if _, status := run(t, "show", id); status != subcommands.ExitFailure {
				t.Errorf("show of a deleted transaction exited with %v, want failure", status)
			}
		})
	}
}

func TestUsageErrors(t *testing.T) {
	setGlobals(t, filepath.Join(t.TempDir(), "ledger.json"), "file")

	for _, args := range [][]string{
		{"add", "12.50", "Coffee"},
		{"add", "-a", "cash", "twelve", "Coffee"},
		{"edit"},
		{"ls", "-o", "random"},
		{"summary", "-p", "decade"},
		{"reset"},
		{"settings", "-notify", "maybe"},
		{"account", "rm"},
	} {
		if _, status := run(t, args...); status != subcommands.ExitUsageError {
			t.Errorf("mm %v exited with %v, want a usage error", args, status)
		}
	}
}

func TestTopicCommand(t *testing.T) {
	setGlobals(t, filepath.Join(t.TempDir(), "ledger.json"), "file")

	if out := mustRun(t, "topic"); !strings.HasPrefix(out, "# mm\n") {
		t.Errorf("topic shows:\n%.40s", out)
	}
	if out := mustRun(t, "topic", "-l"); !strings.Contains(out, "| `bills` ") || !strings.Contains(out, "Categories, tags and budgets") {
		t.Errorf("topic -l:\n%s", out)
	}
	if out := mustRun(t, "topic", "Bills"); !strings.HasPrefix(out, "# Bills\n") {
		t.Errorf("topic Bills shows:\n%.40s", out)
	}
	if _, status := run(t, "topic", "bils"); status != subcommands.ExitFailure {
		t.Errorf("topic bils exited with %v, want a failure", status)
	}
}

func TestLedgerCommands(t *testing.T) {
	setGlobals(t, filepath.Join(t.TempDir(), "ledger.json"), "file")
	mustRun(t, "settings", "-currency", "USD")

	mustRun(t, "account", "add", "-id", "savings", "Savings")
	mustRun(t, "add", "-a", "savings", "-type", "income", "1000", "Salary")
	if out := mustRun(t, "account", "ls"); !strings.Contains(out, "Savings") || !strings.Contains(out, "$1,000.00") {
		t.Errorf("account ls:\n%s", out)
	}

	mustRun(t, "category", "add", "Pets")
	mustRun(t, "budget", "set", "Pets", "50")
	mustRun(t, "add", "-a", "savings", "-c", "Pets", "20", "Kibble")
	if out := mustRun(t, "budget", "show"); !strings.Contains(out, "Pets") || !strings.Contains(out, "40%") {
		t.Errorf("budget show:\n%s", out)
	}
	if out := mustRun(t, "summary"); !strings.Contains(out, "Pets") || !strings.Contains(out, "$1,000.00") {
		t.Errorf("summary:\n%s", out)
	}

	mustRun(t, "bill", "add", "-a", "savings", "-amount", "80", "-d", "2025-03-28", "Electricity")
	if out := mustRun(t, "bill", "ls"); !strings.Contains(out, "Electricity") {
		t.Errorf("bill ls:\n%s", out)
	}
	mustRun(t, "settings", "-widgets", "upcomingBills=on")
	if out := mustRun(t, "dashboard"); !strings.Contains(out, "Electricity") || !strings.Contains(out, "Salary") {
		t.Errorf("dashboard:\n%s", out)
	}

	out := mustRun(t, "export")
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	export := filepath.Join(t.TempDir(), "export.json")
	if err := os.WriteFile(export, []byte(out), 0o644); err != nil {
		t.Fatal(err)
	}

	mustRun(t, "reset", "-yes")
	if out := mustRun(t, "account", "ls"); strings.Contains(out, "Savings") {
		t.Errorf("account ls after reset still lists Savings:\n%s", out)
	}
	if out := mustRun(t, "import", export); out != "Imported 2 transactions in 4 accounts\n" {
		t.Errorf("import printed %q", out)
	}
}

func TestBackupCommands(t *testing.T) {
	setGlobals(t, filepath.Join(t.TempDir(), "ledger.json"), "file")
	t.Setenv("MM_BACKUP_DIR", t.TempDir())

	mustRun(t, "add", "-a", "cash", "5", "Bread")
	out := mustRun(t, "backup")
	name, ok := strings.CutPrefix(strings.TrimSpace(out), "Backed up to ")
	if !ok {
		t.Fatalf("backup printed %q", out)
	}
	mustRun(t, "reset", "-yes")
	mustRun(t, "restore", name)
	if out := mustRun(t, "search", "bread"); !strings.Contains(out, "Bread") {
		t.Errorf("restored ledger misses the transaction:\n%s", out)
	}
}
