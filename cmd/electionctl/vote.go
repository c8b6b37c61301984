package main

import (
	"fmt"
	"net/http"

	authorityhttp "electoral/contexts/civic-governance/election-authority/transport/http"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(voteCmd)
}

var voteCmd = &cobra.Command{
	Use:   "vote <election-id> <candidate>",
	Short: "Cast the --as identity's vote for a candidate",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		electionID, err := parseElectionID(args[0])
		if err != nil {
			return err
		}
		var resp map[string]any
		path := fmt.Sprintf("/v1/elections/%d/votes", electionID)
		if err := client().do(cmd.Context(), http.MethodPost, path, authorityhttp.CastVoteRequest{Candidate: args[1]}, &resp); err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}
