package postgresadapter

import (
	"time"

	"electoral/contexts/civic-governance/election-authority/domain/entities"
)

const (
	memberStatusPending  = "pending"
	memberStatusApproved = "approved"
	memberStatusRejected = "rejected"

	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"

	accessPolicyRowID = 1
)

type electionModel struct {
	ElectionID int       `gorm:"column:election_id;primaryKey;autoIncrement:false"`
	Title      string    `gorm:"column:title"`
	StartsAt   time.Time `gorm:"column:starts_at"`
	EndsAt     time.Time `gorm:"column:ends_at"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (electionModel) TableName() string {
	return "elections"
}

// memberModel is one row per (election, identity); the composite key keeps
// an identity to a single membership per election.
type memberModel struct {
	ElectionID int    `gorm:"column:election_id;primaryKey;autoIncrement:false"`
	Identity   string `gorm:"column:identity;primaryKey"`
	Role       string `gorm:"column:role"`
	Status     string `gorm:"column:status"`
	Position   int    `gorm:"column:position"`
	Votes      int    `gorm:"column:votes"`
	HasVoted   bool   `gorm:"column:has_voted"`
}

func (memberModel) TableName() string {
	return "election_members"
}

type identityModel struct {
	Identity     string    `gorm:"column:identity;primaryKey"`
	Name         string    `gorm:"column:name"`
	Surname      string    `gorm:"column:surname"`
	NationalID   string    `gorm:"column:national_id;uniqueIndex:identities_national_id_key"`
	RegisteredAt time.Time `gorm:"column:registered_at"`
}

func (identityModel) TableName() string {
	return "identities"
}

type accessPolicyModel struct {
	ID              int       `gorm:"column:id;primaryKey;autoIncrement:false"`
	Admin           string    `gorm:"column:admin"`
	ReportsIdentity string    `gorm:"column:reports_identity"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (accessPolicyModel) TableName() string {
	return "access_policy"
}

type outboxModel struct {
	Seq          int64      `gorm:"column:seq;primaryKey;autoIncrement"`
	OutboxID     string     `gorm:"column:outbox_id;uniqueIndex"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "authority_outbox"
}

func electionFromRows(row electionModel, members []memberModel) entities.Election {
	election := entities.Election{
		ElectionID: row.ElectionID,
		Title:      row.Title,
		StartsAt:   row.StartsAt.UTC(),
		EndsAt:     row.EndsAt.UTC(),
		CreatedAt:  row.CreatedAt.UTC(),
	}
	// members arrive ordered by position, which preserves list order.
	for _, member := range members {
		role := entities.Role(member.Role)
		switch member.Status {
		case memberStatusRejected:
			election.Rejected = append(election.Rejected, entities.Membership{Identity: member.Identity, Role: role})
		case memberStatusPending:
			if role == entities.RoleCandidate {
				election.CandidatesPending = append(election.CandidatesPending, entities.Candidate{Identity: member.Identity, Votes: member.Votes})
			} else {
				election.VotersPending = append(election.VotersPending, entities.Voter{Identity: member.Identity, HasVoted: member.HasVoted})
			}
		case memberStatusApproved:
			if role == entities.RoleCandidate {
				election.CandidatesApproved = append(election.CandidatesApproved, entities.Candidate{Identity: member.Identity, Votes: member.Votes})
			} else {
				election.VotersApproved = append(election.VotersApproved, entities.Voter{Identity: member.Identity, HasVoted: member.HasVoted})
			}
		}
	}
	return election
}

func electionModelFromEntity(election entities.Election) electionModel {
	return electionModel{
		ElectionID: election.ElectionID,
		Title:      election.Title,
		StartsAt:   election.StartsAt.UTC(),
		EndsAt:     election.EndsAt.UTC(),
		CreatedAt:  election.CreatedAt.UTC(),
	}
}

func memberModelsFromEntity(election entities.Election) []memberModel {
	rows := make([]memberModel, 0,
		len(election.CandidatesPending)+len(election.CandidatesApproved)+
			len(election.VotersPending)+len(election.VotersApproved)+len(election.Rejected))
	position := 0
	next := func() int {
		position++
		return position
	}
	for _, c := range election.CandidatesPending {
		rows = append(rows, memberModel{ElectionID: election.ElectionID, Identity: c.Identity, Role: string(entities.RoleCandidate), Status: memberStatusPending, Position: next(), Votes: c.Votes})
	}
	for _, c := range election.CandidatesApproved {
		rows = append(rows, memberModel{ElectionID: election.ElectionID, Identity: c.Identity, Role: string(entities.RoleCandidate), Status: memberStatusApproved, Position: next(), Votes: c.Votes})
	}
	for _, v := range election.VotersPending {
		rows = append(rows, memberModel{ElectionID: election.ElectionID, Identity: v.Identity, Role: string(entities.RoleVoter), Status: memberStatusPending, Position: next(), HasVoted: v.HasVoted})
	}
	for _, v := range election.VotersApproved {
		rows = append(rows, memberModel{ElectionID: election.ElectionID, Identity: v.Identity, Role: string(entities.RoleVoter), Status: memberStatusApproved, Position: next(), HasVoted: v.HasVoted})
	}
	for _, m := range election.Rejected {
		rows = append(rows, memberModel{ElectionID: election.ElectionID, Identity: m.Identity, Role: string(m.Role), Status: memberStatusRejected, Position: next()})
	}
	return rows
}

func (row identityModel) toEntity() entities.Profile {
	return entities.Profile{
		Identity:     row.Identity,
		Name:         row.Name,
		Surname:      row.Surname,
		NationalID:   row.NationalID,
		RegisteredAt: row.RegisteredAt.UTC(),
	}
}

func identityModelFromEntity(profile entities.Profile) identityModel {
	return identityModel{
		Identity:     profile.Identity,
		Name:         profile.Name,
		Surname:      profile.Surname,
		NationalID:   profile.NationalID,
		RegisteredAt: profile.RegisteredAt.UTC(),
	}
}

func (row accessPolicyModel) toEntity() entities.AccessPolicy {
	return entities.AccessPolicy{
		Admin:           row.Admin,
		ReportsIdentity: row.ReportsIdentity,
		UpdatedAt:       row.UpdatedAt.UTC(),
	}
}
