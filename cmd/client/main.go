package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-pass-guard/internal/app"
	"github.com/MKhiriev/go-pass-guard/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	defer memguard.Purge()

	// The first interrupt cancels the running command, which clears a
	// pending clipboard copy. A second one kills the process.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		stop()
	}()

	c := newCLI(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
	err := c.newRootCmd().ExecuteContext(ctx)
	if closeErr := c.close(); closeErr != nil {
		fmt.Fprintln(os.Stderr, "Error:", app.UserMessage(closeErr))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", app.UserMessage(err))
		memguard.SafeExit(1)
	}
}
