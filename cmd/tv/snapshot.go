package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tinkervision.dev/tv/module"
	"tinkervision.dev/tv/modules/snapshot"
)

var snapshotPath string
var snapshotFormat string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "start a snapshot module, wait for one frame, and write it to disk",
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
		if err := a.Start(); err != nil {
			return err
		}

		id, err := a.ModuleStart("snapshot", module.ID(1))
		if err != nil {
			return err
		}

		handle, ok := a.ModuleHandle(id)
		if !ok {
			return fmt.Errorf("snapshot: module %d not found", id)
		}
		snap, ok := handle.(*snapshot.Module)
		if !ok {
			return fmt.Errorf("snapshot: module %d is not a snapshot module", id)
		}
		if snapshotPath != "" {
			snap.Parameters().SetString("path", snapshotPath)
		}
		if snapshotFormat != "" {
			snap.Parameters().SetString("format", snapshotFormat)
		}

		time.Sleep(50 * time.Millisecond) // let at least one pass capture a frame

		out, err := snap.Save()
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotPath, "path", "", "directory to write the snapshot into")
	snapshotCmd.Flags().StringVar(&snapshotFormat, "format", "", "image format extension (png, jpg, ...)")
	rootCmd.AddCommand(snapshotCmd)
}
