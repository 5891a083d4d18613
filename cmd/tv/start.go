package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tinkervision.dev/tv/base/errors"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "start the scheduler and run until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a := newSyntheticApi(cfg)
		if err := a.Run(); err != nil {
			return err
		}
		if err := a.Start(); err != nil {
			return err
		}
		fmt.Println("tv: running, press Ctrl-C to quit")

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		return errors.Log(a.Quit())
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
