package httpadapter

import (
	"context"
	"log/slog"

	"electoral/contexts/civic-governance/election-reporting/application/queries"
	httptransport "electoral/contexts/civic-governance/election-reporting/transport/http"
)

type Handler struct {
	Reports queries.ReportUseCase
	Logger  *slog.Logger
}

func (h Handler) VoterReportHandler(ctx context.Context, electionID int) (httptransport.VoterReportResponse, error) {
	report, err := h.Reports.VoterReport(ctx, electionID)
	if err != nil {
		return httptransport.VoterReportResponse{}, err
	}
	voters := make([]httptransport.ReportedVoter, 0, len(report.Voters))
	for _, voter := range report.Voters {
		voters = append(voters, httptransport.ReportedVoter{
			Identity: voter.Identity,
			Name:     voter.Name,
			Surname:  voter.Surname,
			HasVoted: voter.HasVoted,
		})
	}
	return httptransport.VoterReportResponse{ElectionID: report.ElectionID, Voters: voters}, nil
}

func (h Handler) ParticipationReportHandler(ctx context.Context, electionID int) (httptransport.ParticipationReportResponse, error) {
	report, err := h.Reports.ParticipationReport(ctx, electionID)
	if err != nil {
		return httptransport.ParticipationReportResponse{}, err
	}
	return httptransport.ParticipationReportResponse{
		ElectionID:  report.ElectionID,
		TotalVoters: report.TotalVoters,
		Voted:       report.Voted,
		Percentage:  report.Percentage,
	}, nil
}

func (h Handler) ResultReportHandler(ctx context.Context, electionID int) (httptransport.ResultReportResponse, error) {
	report, err := h.Reports.ResultReport(ctx, electionID)
	if err != nil {
		return httptransport.ResultReportResponse{}, err
	}
	results := make([]httptransport.ResultEntry, 0, len(report.Entries))
	for i, entry := range report.Entries {
		results = append(results, httptransport.ResultEntry{
			Rank:     i + 1,
			Identity: entry.Identity,
			Name:     entry.Name,
			Surname:  entry.Surname,
			Votes:    entry.Votes,
			Share:    entry.Share,
		})
	}
	return httptransport.ResultReportResponse{
		ElectionID: report.ElectionID,
		TotalVotes: report.TotalVotes,
		Results:    results,
	}, nil
}
