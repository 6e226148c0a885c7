package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// parseFlags parses args, wrapping every failure except --help in ErrUsage.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}
