package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

//	@title			Solar Store API
//	@version		1.0
//	@description	Каталог солнечного оборудования, корзина и управление каталогом
//	@host			localhost:8080
//	@BasePath		/api/v1

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "solar-store",
		Short:         "Solar equipment storefront service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := serveCmd()
	root.AddCommand(serve, seedCmd())

	// без подкоманды запускается сервер
	root.RunE = serve.RunE

	return root
}
