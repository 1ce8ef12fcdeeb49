package cmd

import (
	"context"
	"flag"

	"github.com/etnz/tryinvest/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read a documentation topic" }
func (*topicCmd) Usage() string {
	return `tryinvest topic [<name>...]

  Prints the documentation topics, or the list of topics when none is given.
  '*' prints all of them.
`
}

func (*topicCmd) SetFlags(*flag.FlagSet) {}

func (*topicCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{docs.Index}
	}
	content, err := docs.Topics(topics...)
	if err != nil {
		return failf("%v", err)
	}
	return printMarkdown(content)
}
