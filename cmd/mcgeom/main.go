// Command mcgeom estimates geometric probabilities over the unit square by
// parallel Monte Carlo sampling.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agbru/mcgeom/internal/app"
	apperrors "github.com/agbru/mcgeom/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		os.Exit(apperrors.ExitSuccess)
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(apperrors.ExitCode(err))
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
