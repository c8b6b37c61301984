package main

import (
	"electoral/internal/platform/identity"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(keygenCmd, addressCmd)
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new identity key pair",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		pair, err := identity.GenerateKeyPair()
		if err != nil {
			return err
		}
		return printJSON(cmd, pair)
	},
}

var addressCmd = &cobra.Command{
	Use:   "address <public-key>",
	Short: "Derive the identity address of a hex-encoded public key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address, err := identity.FromPublicKey(args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, map[string]string{"address": address})
	},
}
