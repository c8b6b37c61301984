package main

import (
	"fmt"
	"net/http"
	"strconv"

	authorityhttp "electoral/contexts/civic-governance/election-authority/transport/http"

	"github.com/spf13/cobra"
)

var (
	electionTitle string
	electionStart string
	electionEnd   string
)

func init() {
	createElectionCmd.Flags().StringVar(&electionTitle, "title", "", "election title")
	createElectionCmd.Flags().StringVar(&electionStart, "start", "", "start as YYYY-MM-DDTHH:MM[:SS] (UTC)")
	createElectionCmd.Flags().StringVar(&electionEnd, "end", "", "end as YYYY-MM-DDTHH:MM[:SS] (UTC)")
	_ = createElectionCmd.MarkFlagRequired("title")
	_ = createElectionCmd.MarkFlagRequired("start")
	_ = createElectionCmd.MarkFlagRequired("end")

	electionsCmd.AddCommand(createElectionCmd, listElectionsCmd, phaseCmd)
	rootCmd.AddCommand(electionsCmd)
}

var electionsCmd = &cobra.Command{
	Use:   "elections",
	Short: "Create and inspect elections",
}

var createElectionCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an election (admin)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		start, err := parseCalendarDate(electionStart)
		if err != nil {
			return err
		}
		end, err := parseCalendarDate(electionEnd)
		if err != nil {
			return err
		}
		req := authorityhttp.CreateElectionRequest{Title: electionTitle, StartsAt: start, EndsAt: end}
		var resp authorityhttp.ElectionResponse
		if err := client().do(cmd.Context(), http.MethodPost, "/v1/elections", req, &resp); err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}

var listElectionsCmd = &cobra.Command{
	Use:   "list",
	Short: "List elections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var resp authorityhttp.ListElectionsResponse
		if err := client().do(cmd.Context(), http.MethodGet, "/v1/elections", nil, &resp); err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}

var phaseCmd = &cobra.Command{
	Use:   "phase <election-id>",
	Short: "Show the current phase of an election",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		electionID, err := parseElectionID(args[0])
		if err != nil {
			return err
		}
		var resp authorityhttp.PhaseResponse
		if err := client().do(cmd.Context(), http.MethodGet, fmt.Sprintf("/v1/elections/%d/phase", electionID), nil, &resp); err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}

// parseCalendarDate splits the fields without validating them; range checks
// belong to the server so bad dates surface as invalid_date.
func parseCalendarDate(value string) (authorityhttp.CalendarDate, error) {
	var date authorityhttp.CalendarDate
	n, _ := fmt.Sscanf(value, "%d-%d-%dT%d:%d:%d", &date.Year, &date.Month, &date.Day, &date.Hour, &date.Minute, &date.Second)
	if n < 5 {
		return authorityhttp.CalendarDate{}, fmt.Errorf("date %q must look like YYYY-MM-DDTHH:MM[:SS]", value)
	}
	return date, nil
}

func parseElectionID(value string) (int, error) {
	electionID, err := strconv.Atoi(value)
	if err != nil || electionID < 1 {
		return 0, fmt.Errorf("election id %q must be a positive integer", value)
	}
	return electionID, nil
}
