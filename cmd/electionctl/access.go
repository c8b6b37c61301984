package main

import (
	"net/http"

	authorityhttp "electoral/contexts/civic-governance/election-authority/transport/http"

	"github.com/spf13/cobra"
)

func init() {
	accessCmd.AddCommand(showAccessCmd, delegateCmd, authorizeReportsCmd)
	rootCmd.AddCommand(accessCmd)
}

var accessCmd = &cobra.Command{
	Use:   "access",
	Short: "Inspect and change the access policy",
}

var showAccessCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current admin and reports identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var resp authorityhttp.AccessPolicyResponse
		if err := client().do(cmd.Context(), http.MethodGet, "/v1/access", nil, &resp); err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}

var delegateCmd = &cobra.Command{
	Use:   "delegate <new-admin>",
	Short: "Hand the admin role to another identity (irrevocable)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp authorityhttp.AccessPolicyResponse
		req := authorityhttp.DelegateAdminRequest{Admin: args[0]}
		if err := client().do(cmd.Context(), http.MethodPut, "/v1/access/admin", req, &resp); err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}

var authorizeReportsCmd = &cobra.Command{
	Use:   "authorize-reports <identity>",
	Short: "Authorize the identity allowed to read report endpoints",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp authorityhttp.AccessPolicyResponse
		req := authorityhttp.AuthorizeReportsRequest{Identity: args[0]}
		if err := client().do(cmd.Context(), http.MethodPut, "/v1/access/reports", req, &resp); err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}
