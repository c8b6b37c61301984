package main

import (
	"fmt"
	"net/http"

	reportinghttp "electoral/contexts/civic-governance/election-reporting/transport/http"

	"github.com/spf13/cobra"
)

func init() {
	reportsCmd.AddCommand(
		reportCommand("voters", "Approved voters of a finished election", func() any { return &reportinghttp.VoterReportResponse{} }),
		reportCommand("participation", "Turnout of a finished election", func() any { return &reportinghttp.ParticipationReportResponse{} }),
		reportCommand("results", "Ranked results of a finished election", func() any { return &reportinghttp.ResultReportResponse{} }),
	)
	rootCmd.AddCommand(reportsCmd)
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Read election reports",
}

func reportCommand(name string, short string, target func() any) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <election-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			electionID, err := parseElectionID(args[0])
			if err != nil {
				return err
			}
			resp := target()
			path := fmt.Sprintf("/v1/reports/elections/%d/%s", electionID, name)
			if err := client().do(cmd.Context(), http.MethodGet, path, nil, resp); err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
}
