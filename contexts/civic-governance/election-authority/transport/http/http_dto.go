package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CalendarDate mirrors the field-wise date accepted by create election.
type CalendarDate struct {
	Second int `json:"second"`
	Minute int `json:"minute"`
	Hour   int `json:"hour"`
	Day    int `json:"day"`
	Month  int `json:"month"`
	Year   int `json:"year"`
}

type CreateElectionRequest struct {
	Title    string       `json:"title"`
	StartsAt CalendarDate `json:"starts_at"`
	EndsAt   CalendarDate `json:"ends_at"`
}

type ElectionResponse struct {
	ElectionID         int       `json:"election_id"`
	Title              string    `json:"title"`
	StartsAt           time.Time `json:"starts_at"`
	EndsAt             time.Time `json:"ends_at"`
	Phase              string    `json:"phase"`
	CandidatesPending  int       `json:"candidates_pending"`
	CandidatesApproved int       `json:"candidates_approved"`
	VotersPending      int       `json:"voters_pending"`
	VotersApproved     int       `json:"voters_approved"`
}

type ListElectionsResponse struct {
	Items []ElectionResponse `json:"items"`
}

type RegisterIdentityRequest struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	NationalID string `json:"national_id"`
}

type ProfileResponse struct {
	Identity     string    `json:"identity"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	NationalID   string    `json:"national_id"`
	RegisteredAt time.Time `json:"registered_at"`
}

type JoinElectionRequest struct {
	Role string `json:"role"`
}

type MembershipStatusRequest struct {
	Role     string `json:"role"`
	Decision string `json:"decision"`
}

type MembersResponse struct {
	ElectionID int      `json:"election_id"`
	Role       string   `json:"role"`
	Status     string   `json:"status"`
	Items      []string `json:"items"`
}

type CastVoteRequest struct {
	Candidate string `json:"candidate"`
}

type PhaseResponse struct {
	ElectionID int    `json:"election_id"`
	Phase      string `json:"phase"`
}

type DelegateAdminRequest struct {
	Admin string `json:"admin"`
}

type AuthorizeReportsRequest struct {
	Identity string `json:"identity"`
}

type AccessPolicyResponse struct {
	Admin           string    `json:"admin"`
	ReportsIdentity string    `json:"reports_identity,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

type ApprovedVoter struct {
	Identity string `json:"identity"`
	HasVoted bool   `json:"has_voted"`
}

type ApprovedVotersResponse struct {
	ElectionID int             `json:"election_id"`
	Items      []ApprovedVoter `json:"items"`
}

type CandidateTally struct {
	Votes   int             `json:"votes"`
	Profile ProfileResponse `json:"profile"`
}

type CandidateTalliesResponse struct {
	ElectionID int              `json:"election_id"`
	Items      []CandidateTally `json:"items"`
}
