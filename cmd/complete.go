package cmd

import (
	"flag"
	"strings"

	"github.com/etnz/tryinvest/docs"
	"github.com/etnz/tryinvest/renderer"
	"github.com/etnz/tryinvest/symbols"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// symbolArgs are the commands whose argument is a ticker symbol.
var symbolArgs = map[string]bool{"buy": true, "sell": true, "lots": true, "quote": true, "trend": true}

// Complete answers a shell completion request and exits, or returns when the process was not
// started for one. 'COMP_INSTALL=1 tryinvest' installs the completion in the shell.
func Complete(name string) {
	completion(flag.CommandLine, symbols.Default()).Complete(name)
}

// completion returns the completion tree of the commands.
func completion(global *flag.FlagSet, dir *symbols.Directory) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(global),
	}
	root.Flags["config"] = predict.Files("*.toml")
	root.Flags["style"] = predict.Set{renderer.StyleAuto, "dark", "light", "notty", renderer.StyleRaw}

	for _, cmds := range Commands {
		for _, c := range cmds {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			sub := &complete.Command{Flags: flagPredictors(fs)}
			if symbolArgs[c.Name()] {
				sub.Args = symbolPredictor(dir)
			}
			if c.Name() == "topic" {
				sub.Args = topicPredictor()
			}
			root.Sub[c.Name()] = sub
		}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	return root
}

type boolFlag interface{ IsBoolFlag() bool }

// flagPredictors predicts nothing after a boolean flag, and anything after the others.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(boolFlag); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

// topicPredictor predicts the documentation topics.
func topicPredictor() complete.Predictor { return predict.Set(docs.Names()) }

// symbolPredictor predicts the directory symbols starting with the typed prefix.
func symbolPredictor(dir *symbols.Directory) complete.PredictFunc {
	return func(prefix string) []string {
		var found []string
		for _, s := range dir.Search(prefix, 0) {
			found = append(found, s.Symbol)
		}
		// keep the case the user started typing in.
		if prefix != strings.ToUpper(prefix) {
			for i := range found {
				found[i] = strings.ToLower(found[i])
			}
		}
		return found
	}
}
