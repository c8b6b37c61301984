package httpadapter

import (
	"context"
	"log/slog"

	"electoral/contexts/civic-governance/election-authority/application/commands"
	"electoral/contexts/civic-governance/election-authority/application/queries"
	"electoral/contexts/civic-governance/election-authority/domain/entities"
	httptransport "electoral/contexts/civic-governance/election-authority/transport/http"
)

type Handler struct {
	Elections     commands.ElectionUseCase
	Registry      commands.RegistryUseCase
	Access        commands.AccessUseCase
	Queries       queries.ElectionQueries
	ReportSources queries.ReportSourceUseCase
	Logger        *slog.Logger
}

func (h Handler) CreateElectionHandler(
	ctx context.Context,
	callerID string,
	req httptransport.CreateElectionRequest,
) (httptransport.ElectionResponse, error) {
	election, err := h.Elections.CreateElection(ctx, commands.CreateElectionCommand{
		CallerID: callerID,
		Title:    req.Title,
		StartsAt: toCalendarDate(req.StartsAt),
		EndsAt:   toCalendarDate(req.EndsAt),
	})
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	view, err := h.Queries.GetElection(ctx, election.ElectionID)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return mapElection(view), nil
}

func (h Handler) AuthorizeAdminHandler(ctx context.Context, callerID string) error {
	return h.Queries.AuthorizeAdmin(ctx, callerID)
}

func (h Handler) AuthorizeReportSourceHandler(ctx context.Context, callerID string, endpoint string) error {
	return h.ReportSources.Authorize(ctx, callerID, endpoint)
}

func (h Handler) ListElectionsHandler(ctx context.Context) (httptransport.ListElectionsResponse, error) {
	views, err := h.Queries.ListElections(ctx)
	if err != nil {
		return httptransport.ListElectionsResponse{}, err
	}
	items := make([]httptransport.ElectionResponse, 0, len(views))
	for _, view := range views {
		items = append(items, mapElection(view))
	}
	return httptransport.ListElectionsResponse{Items: items}, nil
}

func (h Handler) GetElectionHandler(ctx context.Context, electionID int) (httptransport.ElectionResponse, error) {
	view, err := h.Queries.GetElection(ctx, electionID)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return mapElection(view), nil
}

func (h Handler) RegisterIdentityHandler(
	ctx context.Context,
	callerID string,
	req httptransport.RegisterIdentityRequest,
) (httptransport.ProfileResponse, error) {
	profile, err := h.Registry.RegisterIdentity(ctx, commands.RegisterIdentityCommand{
		CallerID:   callerID,
		Name:       req.Name,
		Surname:    req.Surname,
		NationalID: req.NationalID,
	})
	if err != nil {
		return httptransport.ProfileResponse{}, err
	}
	return mapProfile(profile), nil
}

func (h Handler) JoinElectionHandler(
	ctx context.Context,
	callerID string,
	electionID int,
	req httptransport.JoinElectionRequest,
) error {
	return h.Elections.JoinElection(ctx, commands.JoinElectionCommand{
		CallerID:   callerID,
		ElectionID: electionID,
		Role:       entities.Role(req.Role),
	})
}

func (h Handler) SetMembershipStatusHandler(
	ctx context.Context,
	callerID string,
	electionID int,
	identity string,
	req httptransport.MembershipStatusRequest,
) error {
	return h.Elections.SetMembershipStatus(ctx, commands.SetMembershipStatusCommand{
		CallerID:   callerID,
		ElectionID: electionID,
		Identity:   identity,
		Role:       entities.Role(req.Role),
		Decision:   entities.Decision(req.Decision),
	})
}

func (h Handler) ListPendingMembersHandler(
	ctx context.Context,
	callerID string,
	electionID int,
	role string,
) (httptransport.MembersResponse, error) {
	items, err := h.Queries.ListUnverified(ctx, callerID, electionID, entities.Role(role))
	if err != nil {
		return httptransport.MembersResponse{}, err
	}
	return httptransport.MembersResponse{
		ElectionID: electionID,
		Role:       role,
		Status:     "pending",
		Items:      items,
	}, nil
}

func (h Handler) ListApprovedMembersHandler(
	ctx context.Context,
	electionID int,
	role string,
) (httptransport.MembersResponse, error) {
	items, err := h.Queries.ListApproved(ctx, electionID, entities.Role(role))
	if err != nil {
		return httptransport.MembersResponse{}, err
	}
	return httptransport.MembersResponse{
		ElectionID: electionID,
		Role:       role,
		Status:     "approved",
		Items:      items,
	}, nil
}

func (h Handler) CastVoteHandler(
	ctx context.Context,
	callerID string,
	electionID int,
	req httptransport.CastVoteRequest,
) error {
	return h.Elections.CastVote(ctx, commands.CastVoteCommand{
		CallerID:    callerID,
		ElectionID:  electionID,
		CandidateID: req.Candidate,
	})
}

func (h Handler) QueryPhaseHandler(ctx context.Context, electionID int) (httptransport.PhaseResponse, error) {
	phase, err := h.Queries.QueryPhase(ctx, electionID)
	if err != nil {
		return httptransport.PhaseResponse{}, err
	}
	return httptransport.PhaseResponse{ElectionID: electionID, Phase: string(phase)}, nil
}

func (h Handler) DelegateAdminHandler(
	ctx context.Context,
	callerID string,
	req httptransport.DelegateAdminRequest,
) (httptransport.AccessPolicyResponse, error) {
	policy, err := h.Access.DelegateAdmin(ctx, commands.DelegateAdminCommand{
		CallerID: callerID,
		NewAdmin: req.Admin,
	})
	if err != nil {
		return httptransport.AccessPolicyResponse{}, err
	}
	return mapPolicy(policy), nil
}

func (h Handler) AuthorizeReportsHandler(
	ctx context.Context,
	callerID string,
	req httptransport.AuthorizeReportsRequest,
) (httptransport.AccessPolicyResponse, error) {
	policy, err := h.Access.AuthorizeReports(ctx, commands.AuthorizeReportsCommand{
		CallerID: callerID,
		Identity: req.Identity,
	})
	if err != nil {
		return httptransport.AccessPolicyResponse{}, err
	}
	return mapPolicy(policy), nil
}

func (h Handler) AccessPolicyHandler(ctx context.Context) (httptransport.AccessPolicyResponse, error) {
	policy, err := h.Access.GetAccessPolicy(ctx)
	if err != nil {
		return httptransport.AccessPolicyResponse{}, err
	}
	return mapPolicy(policy), nil
}

func (h Handler) ApprovedVotersHandler(
	ctx context.Context,
	callerID string,
	electionID int,
) (httptransport.ApprovedVotersResponse, error) {
	voters, err := h.ReportSources.ApprovedVoters(ctx, callerID, electionID)
	if err != nil {
		return httptransport.ApprovedVotersResponse{}, err
	}
	items := make([]httptransport.ApprovedVoter, 0, len(voters))
	for _, voter := range voters {
		items = append(items, httptransport.ApprovedVoter{Identity: voter.Identity, HasVoted: voter.HasVoted})
	}
	return httptransport.ApprovedVotersResponse{ElectionID: electionID, Items: items}, nil
}

func (h Handler) CandidateTalliesHandler(
	ctx context.Context,
	callerID string,
	electionID int,
) (httptransport.CandidateTalliesResponse, error) {
	tallies, err := h.ReportSources.CandidatesWithVotes(ctx, callerID, electionID)
	if err != nil {
		return httptransport.CandidateTalliesResponse{}, err
	}
	items := make([]httptransport.CandidateTally, 0, len(tallies))
	for _, tally := range tallies {
		items = append(items, httptransport.CandidateTally{Votes: tally.Votes, Profile: mapProfile(tally.Profile)})
	}
	return httptransport.CandidateTalliesResponse{ElectionID: electionID, Items: items}, nil
}

func (h Handler) ReportProfileHandler(
	ctx context.Context,
	callerID string,
	identity string,
) (httptransport.ProfileResponse, error) {
	profile, err := h.ReportSources.Profile(ctx, callerID, identity)
	if err != nil {
		return httptransport.ProfileResponse{}, err
	}
	return mapProfile(profile), nil
}

func toCalendarDate(date httptransport.CalendarDate) entities.CalendarDate {
	return entities.CalendarDate{
		Second: date.Second,
		Minute: date.Minute,
		Hour:   date.Hour,
		Day:    date.Day,
		Month:  date.Month,
		Year:   date.Year,
	}
}

func mapElection(view queries.ElectionView) httptransport.ElectionResponse {
	return httptransport.ElectionResponse{
		ElectionID:         view.ElectionID,
		Title:              view.Title,
		StartsAt:           view.StartsAt,
		EndsAt:             view.EndsAt,
		Phase:              string(view.Phase),
		CandidatesPending:  view.CandidatesPending,
		CandidatesApproved: view.CandidatesApproved,
		VotersPending:      view.VotersPending,
		VotersApproved:     view.VotersApproved,
	}
}

func mapProfile(profile entities.Profile) httptransport.ProfileResponse {
	return httptransport.ProfileResponse{
		Identity:     profile.Identity,
		Name:         profile.Name,
		Surname:      profile.Surname,
		NationalID:   profile.NationalID,
		RegisteredAt: profile.RegisteredAt,
	}
}

func mapPolicy(policy entities.AccessPolicy) httptransport.AccessPolicyResponse {
	return httptransport.AccessPolicyResponse{
		Admin:           policy.Admin,
		ReportsIdentity: policy.ReportsIdentity,
		UpdatedAt:       policy.UpdatedAt,
	}
}
