package cmd

import (
	"github.com/articled/apiserver/internal/server"
	"github.com/go-chi/docgen"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the HTTP routes as markdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		router := server.NewRouter(server.Deps{
			Logger:   zap.NewNop(),
			Gatherer: prometheus.NewRegistry(),
		})
		cmd.Println(docgen.MarkdownRoutesDoc(router, docgen.MarkdownOpts{
			ProjectPath: "github.com/articled/apiserver",
			Intro:       "Routes served by `articled server`.",
		}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
