package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logmirror/logmirror/internal/version"
)

func init() {
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	var short bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Println(version.Version)
				return
			}
			fmt.Printf("%s %s\n", version.AppName, version.Detailed())
		},
	}

	versionCmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version number")
	return versionCmd
}
