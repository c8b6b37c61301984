package main

import (
	"fmt"
	"net/http"
	"net/url"

	authorityhttp "electoral/contexts/civic-governance/election-authority/transport/http"

	"github.com/spf13/cobra"
)

var (
	joinRole   string
	statusRole string
	listRole   string
)

func init() {
	joinCmd.Flags().StringVar(&joinRole, "role", "voter", "candidate or voter")
	for _, cmd := range []*cobra.Command{approveCmd, rejectCmd} {
		cmd.Flags().StringVar(&statusRole, "role", "voter", "candidate or voter")
	}
	for _, cmd := range []*cobra.Command{pendingCmd, approvedCmd} {
		cmd.Flags().StringVar(&listRole, "role", "voter", "candidate or voter")
	}
	membersCmd.AddCommand(pendingCmd, approvedCmd)
	rootCmd.AddCommand(joinCmd, approveCmd, rejectCmd, membersCmd)
}

var joinCmd = &cobra.Command{
	Use:   "join <election-id>",
	Short: "Apply to an election as the --as identity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		electionID, err := parseElectionID(args[0])
		if err != nil {
			return err
		}
		var resp map[string]any
		path := fmt.Sprintf("/v1/elections/%d/members", electionID)
		if err := client().do(cmd.Context(), http.MethodPost, path, authorityhttp.JoinElectionRequest{Role: joinRole}, &resp); err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}

var approveCmd = &cobra.Command{
	Use:   "approve <election-id> <identity>",
	Short: "Approve a pending member (admin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd, args, "approved")
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject <election-id> <identity>",
	Short: "Reject a pending member (admin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd, args, "rejected")
	},
}

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List election members",
}

var pendingCmd = &cobra.Command{
	Use:   "pending <election-id>",
	Short: "List pending members of a role (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return listMembers(cmd, args[0], "pending")
	},
}

var approvedCmd = &cobra.Command{
	Use:   "approved <election-id>",
	Short: "List approved members of a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return listMembers(cmd, args[0], "approved")
	},
}

func setStatus(cmd *cobra.Command, args []string, decision string) error {
	electionID, err := parseElectionID(args[0])
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/v1/elections/%d/members/%s/status", electionID, url.PathEscape(args[1]))
	req := authorityhttp.MembershipStatusRequest{Role: statusRole, Decision: decision}
	var resp map[string]any
	if err := client().do(cmd.Context(), http.MethodPost, path, req, &resp); err != nil {
		return err
	}
	return printJSON(cmd, resp)
}

func listMembers(cmd *cobra.Command, rawID string, status string) error {
	electionID, err := parseElectionID(rawID)
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/v1/elections/%d/members/%s?role=%s", electionID, status, url.QueryEscape(listRole))
	var resp authorityhttp.MembersResponse
	if err := client().do(cmd.Context(), http.MethodGet, path, nil, &resp); err != nil {
		return err
	}
	return printJSON(cmd, resp)
}
