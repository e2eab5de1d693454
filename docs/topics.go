// Package docs holds the mm documentation topics, shown by `mm topic`.
package docs

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

//go:embed *.md
var files embed.FS

// Index is the topic listing the others.
const Index = "readme"

// Topic is one documentation page.
type Topic struct {
	Name  string // as typed after `mm topic`
	Title string // the first heading of the page
}

// Topics returns every topic but the index, sorted by name.
func Topics() ([]Topic, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}
	var topics []Topic
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".md")
		if e.IsDir() || !ok || name == Index {
			continue
		}
		content, err := files.ReadFile(e.Name())
		if err != nil {
			return nil, err
		}
		topics = append(topics, Topic{Name: name, Title: title(content, name)})
	}
	slices.SortFunc(topics, func(a, b Topic) int { return strings.Compare(a.Name, b.Name) })
	return topics, nil
}

// Names returns the topic names, for completion.
func Names() []string {
	topics, _ := Topics()
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Name
	}
	return names
}

// title is the text of the first level one heading, or name.
func title(content []byte, name string) string {
	s := bufio.NewScanner(bytes.NewReader(content))
	for s.Scan() {
		if t, ok := strings.CutPrefix(s.Text(), "# "); ok {
			return strings.TrimSpace(t)
		}
	}
	return name
}

// normalize accepts "Bills", "bills.md" or " bills " for "bills".
func normalize(name string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".md")
}

// Read returns the named topics one after the other. No name reads the
// index and "*" reads every topic.
func Read(names ...string) (string, error) {
	if len(names) == 0 {
		names = []string{Index}
	}
	var b strings.Builder
	for _, name := range names {
		if name == "*" {
			for _, t := range Names() {
				if err := readInto(&b, t); err != nil {
					return "", err
				}
			}
			continue
		}
		if err := readInto(&b, normalize(name)); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func readInto(b *strings.Builder, name string) error {
	content, err := files.ReadFile(name + ".md")
	if err != nil {
		if near := closest(name); near != "" {
			return fmt.Errorf("no topic %q, did you mean %q?", name, near)
		}
		return fmt.Errorf("no topic %q, see `mm topic -l`", name)
	}
	b.Write(content)
	b.WriteString("\n")
	return nil
}

// closest returns the topic name within two edits of name, if any.
func closest(name string) string {
	best, dist := "", 3
	for _, t := range append(Names(), Index) {
		if d := levenshtein.ComputeDistance(name, t); d < dist {
			best, dist = t, d
		}
	}
	return best
}
