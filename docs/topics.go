// Package docs holds the help topics of the tryinvest command, one markdown file per topic.
package docs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed *.md
var files embed.FS

// Index is the topic listing the others.
const Index = "readme"

// All designates every topic but the index.
const All = "*"

// ErrUnknownTopic is returned for a topic without a file.
var ErrUnknownTopic = errors.New("unknown topic")

// Names returns the topics, index excluded, in alphabetical order.
func Names() []string {
	matches, _ := fs.Glob(files, "*.md") // the pattern is valid
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if name := strings.TrimSuffix(m, ".md"); name != Index {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Topic returns the markdown of name, or of every topic for All.
func Topic(name string) (string, error) {
	if name == All {
		return Topics(Names()...)
	}
	data, err := files.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("%q: %w", name, ErrUnknownTopic)
	}
	return string(data), nil
}

// Topics returns the markdown of the topics, separated by a blank line.
func Topics(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		md, err := Topic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(md)
		b.WriteString("\n")
	}
	return b.String(), nil
}
