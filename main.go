package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/amora/amoractl/internal/build"
	"github.com/amora/amoractl/internal/cmd/root"
	"github.com/amora/amoractl/internal/iostreams"
)

// set by the release build with -ldflags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func registerSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigs)
		<-sigs
		cancel()
	}()
	return ctx
}

func main() {
	ctx := registerSignalHandler()
	root.Execute(ctx, iostreams.GetOSIOStreams(), &build.Info{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
}
