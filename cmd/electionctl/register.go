package main

import (
	"net/http"

	authorityhttp "electoral/contexts/civic-governance/election-authority/transport/http"

	"github.com/spf13/cobra"
)

var registerReq authorityhttp.RegisterIdentityRequest

func init() {
	registerCmd.Flags().StringVar(&registerReq.Name, "name", "", "given name")
	registerCmd.Flags().StringVar(&registerReq.Surname, "surname", "", "surname")
	registerCmd.Flags().StringVar(&registerReq.NationalID, "national-id", "", "national id, unique across the registry")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("surname")
	_ = registerCmd.MarkFlagRequired("national-id")
	rootCmd.AddCommand(registerCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the --as identity with a profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var resp authorityhttp.ProfileResponse
		if err := client().do(cmd.Context(), http.MethodPost, "/v1/identities", registerReq, &resp); err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}
