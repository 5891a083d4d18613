package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tinkervision.dev/tv/module"
)

var sceneCmd = &cobra.Command{
	Use:   "scene",
	Short: "build a shared-prefix execution scene from a chain of already-running modules",
}

var sceneFromCmd = &cobra.Command{
	Use:   "from ROOT_ID MODULE_ID...",
	Short: "start a scene rooted at ROOT_ID and extend it through each following module id",
	Args:  cobra.MinimumNArgs(1),
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

		root, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		scene, err := a.SceneFromModule(module.ID(root))
		if err != nil {
			return err
		}
		for _, arg := range args[1:] {
			id, err := strconv.Atoi(arg)
			if err != nil {
				return err
			}
			if err := a.SceneAddModule(scene, module.ID(id)); err != nil {
				return err
			}
		}
		fmt.Println(int64(scene))
		return nil
	},
}

func init() {
	sceneCmd.AddCommand(sceneFromCmd)
	rootCmd.AddCommand(sceneCmd)
}
