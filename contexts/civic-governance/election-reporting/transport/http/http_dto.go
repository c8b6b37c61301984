package http

type ReportedVoter struct {
	Identity string `json:"identity"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	HasVoted bool   `json:"has_voted"`
}

type VoterReportResponse struct {
	ElectionID int             `json:"election_id"`
	Voters     []ReportedVoter `json:"voters"`
}

type ParticipationReportResponse struct {
	ElectionID  int `json:"election_id"`
	TotalVoters int `json:"total_voters"`
	Voted       int `json:"voted"`
	Percentage  int `json:"percentage"`
}

type ResultEntry struct {
	Rank     int    `json:"rank"`
	Identity string `json:"identity"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Votes    int    `json:"votes"`
	Share    int    `json:"share"`
}

type ResultReportResponse struct {
	ElectionID int           `json:"election_id"`
	TotalVotes int           `json:"total_votes"`
	Results    []ResultEntry `json:"results"`
}
