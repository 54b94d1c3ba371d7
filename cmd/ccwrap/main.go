// Command ccwrap is a compiler-invocation wrapper: it intercepts a
// compiler call, checks a content-addressed cache, and either replays a
// previous result or runs the real compiler and stores what came out.
package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

func main() {
	cfg := loadConfig("", "")

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&wrapCmd{cfg: &cfg}, "")
	subcommands.Register(&describeArgsCmd{}, "")

	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerologLevel(strings.ToLower(cfg.logLevel))).
		With().Timestamp().Logger()

	ctx := log.WithContext(context.Background())
	os.Exit(int(subcommands.Execute(ctx)))
}
