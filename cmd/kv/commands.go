package kv

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Retrieve the value for a key (if any)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := stashClient.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Println(value.String())
			return nil
		},
	}
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set the value for a key (overwriting any already set)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stashClient.Set(args[0], []byte(args[1])); err != nil {
				return err
			}
			fmt.Println("OK")
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Delete a key-value pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stashClient.Delete(args[0]); err != nil {
				return err
			}
			fmt.Println("OK")
			return nil
		},
	}
	dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Dump the background worker's state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := stashClient.Dump()
			if err != nil {
				return err
			}
			fmt.Println(snapshot)
			return nil
		},
	}
	quitCmd = &cobra.Command{
		Use:   "quit",
		Short: "Close the background worker (if one is open)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stashClient.Quit(); err != nil {
				return err
			}
			fmt.Println("OK")
			return nil
		},
	}
)
