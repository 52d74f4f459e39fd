package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stash-kv/stash/cmd/kv"
	"github.com/stash-kv/stash/cmd/util"
	"github.com/stash-kv/stash/cmd/worker"
	"github.com/stash-kv/stash/rpc/common"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "stash",
		Short: "background key-value worker",
		Long: fmt.Sprintf(`stash (v%s)

A tiny in-memory key-value store held by a long-lived background worker.
Each CLI invocation sends one command over a local socket, prints the
worker's reply and exits.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of stash",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stash v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(worker.WorkerCmd)
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "transport"
	RootCmd.PersistentFlags().String(key, "unix", util.WrapString("transport to use (unix, tcp)"))
	key = "endpoint"
	RootCmd.PersistentFlags().String(key, common.DefaultEndpoint, util.WrapString("rendezvous endpoint shared by worker and clients: a socket path for unix, host:port for tcp"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
