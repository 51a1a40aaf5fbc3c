// Command ratenum lists the positive rationals in Calkin-Wilf order.
//
// With no flags it prints the first 20 values for uint32, one "num/den" per
// line. See -help for the single-index, comparison and server modes.
package main

import (
	"context"
	"os"

	"github.com/agbru/ratenum/internal/app"
	apperrors "github.com/agbru/ratenum/internal/errors"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if app.HasVersionFlag(args[1:]) {
		app.PrintVersion(os.Stdout)
		return apperrors.ExitSuccess
	}

	application, err := app.New(args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		return apperrors.ExitErrorConfig
	}
	return application.Run(context.Background(), os.Stdout)
}
