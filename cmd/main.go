package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/resourcehub/resourcehub/cmd/service"
)

func main() {
	root := &cobra.Command{
		Use:   "resourcehub",
		Short: "resource catalog service",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("empty command")
		},
	}

	root.AddCommand(
		service.NewCommand(),
		service.NewProcessCommand(),
		service.NewStarsCommand(),
		service.NewReadmeCommand(),
		service.NewPublishCommand(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
