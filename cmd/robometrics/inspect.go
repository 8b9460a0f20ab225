package main

import (
	"github.com/spf13/cobra"

	"github.com/san-kum/robometrics/internal/export"
	"github.com/san-kum/robometrics/internal/tui"
)

func runInspect(cmd *cobra.Command, args []string) error {
	run, err := export.Load(args[0])
	if err != nil {
		return err
	}
	return tui.Run(tui.NewModel(run.Path, tui.Collect(run, deviation()), palette()))
}
