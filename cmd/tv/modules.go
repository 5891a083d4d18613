package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tinkervision.dev/tv/module"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "inspect and instantiate vision modules",
}

var modulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "list every available built-in and plug-in module",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a := newSyntheticApi(cfg)
		for _, name := range a.EnumerateAvailableModules() {
			fmt.Println(name)
		}
		return nil
	},
}

var modulesLoadCmd = &cobra.Command{
	Use:   "load NAME [ID]",
	Short: "instantiate a module and print its id",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a := newSyntheticApi(cfg)
		if err := a.Run(); err != nil {
			return err
		}
		defer a.Quit()

		var id int32
		if len(args) == 2 {
			v, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			id = int32(v)
		}

		got, err := a.ModuleStart(args[0], module.ID(id))
		if err != nil {
			return err
		}
		fmt.Println(int32(got))
		return nil
	},
}

func init() {
	modulesCmd.AddCommand(modulesListCmd, modulesLoadCmd)
	rootCmd.AddCommand(modulesCmd)
}
