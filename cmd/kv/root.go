package kv

import (
	"github.com/spf13/cobra"

	"github.com/stash-kv/stash/cmd/util"
	"github.com/stash-kv/stash/rpc/client"
)

var (
	stashClient *client.Client

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:               "kv",
		Short:             "Send a single command to a running worker",
		PersistentPreRunE: setupClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add common client flags to the KV command
	util.SetupClientFlags(KeyValueCommands)

	// Add subcommands
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(setCmd)
	KeyValueCommands.AddCommand(delCmd)
	KeyValueCommands.AddCommand(dumpCmd)
	KeyValueCommands.AddCommand(quitCmd)
	KeyValueCommands.AddCommand(perfTestCmd)
}

// setupClient initializes the one-shot client from the bound configuration
func setupClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	connector, err := util.GetClientConnector()
	if err != nil {
		return err
	}

	stashClient = client.New(*util.GetClientConfig(), connector)
	return nil
}
