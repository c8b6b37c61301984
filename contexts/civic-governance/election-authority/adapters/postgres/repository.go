package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"electoral/contexts/civic-governance/election-authority/domain/entities"
	domainerrors "electoral/contexts/civic-governance/election-authority/domain/errors"
	"electoral/contexts/civic-governance/election-authority/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository implements every election-authority port on postgres. Each
// mutation runs in one transaction together with its outbox rows.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Migrate(ctx context.Context) error {
	err := r.db.WithContext(ctx).AutoMigrate(
		&electionModel{},
		&memberModel{},
		&identityModel{},
		&accessPolicyModel{},
		&outboxModel{},
	)
	if err != nil {
		r.logError("election_authority_migrate_failed", err)
	}
	return err
}

// EnsureAccessPolicy seeds the singleton policy row on first start. An
// existing row is left alone so a delegated admin survives restarts.
func (r *Repository) EnsureAccessPolicy(ctx context.Context, admin string, now time.Time) error {
	row := accessPolicyModel{
		ID:        accessPolicyRowID,
		Admin:     strings.TrimSpace(admin),
		UpdatedAt: now.UTC(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(&row).
		Error
	if err != nil {
		r.logError("access_policy_seed_failed", err)
	}
	return err
}

func (r *Repository) CreateElection(ctx context.Context, draft entities.Election, events ports.ElectionEvents) (entities.Election, error) {
	var created entities.Election
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Ids are len+1; the table lock keeps concurrent creators from
		// reading the same maximum.
		if err := tx.Exec("LOCK TABLE elections IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
			return err
		}
		var maxID int
		if err := tx.Model(&electionModel{}).
			Select("COALESCE(MAX(election_id), 0)").
			Scan(&maxID).
			Error; err != nil {
			return err
		}

		election := draft.Clone()
		election.ElectionID = maxID + 1
		row := electionModelFromEntity(election)
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if err := replaceMembersTx(tx, election); err != nil {
			return err
		}
		if err := appendEventsTx(tx, events, election); err != nil {
			return err
		}
		created = election
		return nil
	})
	if err != nil {
		r.logError("election_create_failed", err)
		return entities.Election{}, err
	}
	return created, nil
}

func (r *Repository) GetElection(ctx context.Context, electionID int) (entities.Election, error) {
	return loadElection(r.db.WithContext(ctx), electionID, false)
}

func (r *Repository) ListElections(ctx context.Context) ([]entities.Election, error) {
	var rows []electionModel
	if err := r.db.WithContext(ctx).Order("election_id ASC").Find(&rows).Error; err != nil {
		r.logError("election_list_failed", err)
		return nil, err
	}
	var members []memberModel
	if err := r.db.WithContext(ctx).
		Order("election_id ASC, position ASC").
		Find(&members).
		Error; err != nil {
		r.logError("election_list_members_failed", err)
		return nil, err
	}
	byElection := make(map[int][]memberModel, len(rows))
	for _, member := range members {
		byElection[member.ElectionID] = append(byElection[member.ElectionID], member)
	}
	items := make([]entities.Election, 0, len(rows))
	for _, row := range rows {
		items = append(items, electionFromRows(row, byElection[row.ElectionID]))
	}
	return items, nil
}

func (r *Repository) UpdateElection(
	ctx context.Context,
	electionID int,
	mutate ports.ElectionMutation,
	events ports.ElectionEvents,
) (entities.Election, error) {
	var updated entities.Election
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		election, err := loadElection(tx, electionID, true)
		if err != nil {
			return err
		}
		if err := mutate(&election); err != nil {
			return err
		}
		if election.ElectionID != electionID {
			return domainerrors.ErrRepositoryInvariantBroke
		}
		if err := replaceMembersTx(tx, election); err != nil {
			return err
		}
		if err := appendEventsTx(tx, events, election); err != nil {
			return err
		}
		updated = election
		return nil
	})
	if err != nil {
		if !isDomainError(err) {
			r.logError("election_update_failed", err, "election_id", electionID)
		}
		return entities.Election{}, err
	}
	return updated, nil
}

func (r *Repository) RegisterIdentity(ctx context.Context, profile entities.Profile, events []ports.EventEnvelope) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := identityModelFromEntity(profile)
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		for _, envelope := range events {
			if err := insertOutboxEnvelopeTx(tx, envelope); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrIdentityExists
		}
		r.logError("identity_register_failed", err, "identity", profile.Identity)
		return err
	}
	return nil
}

func (r *Repository) GetProfile(ctx context.Context, identity string) (entities.Profile, error) {
	var row identityModel
	err := r.db.WithContext(ctx).
		Where("identity = ?", strings.TrimSpace(identity)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Profile{}, domainerrors.ErrIdentityNotFound
		}
		return entities.Profile{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetAccessPolicy(ctx context.Context) (entities.AccessPolicy, error) {
	var row accessPolicyModel
	err := r.db.WithContext(ctx).
		Where("id = ?", accessPolicyRowID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.AccessPolicy{}, domainerrors.ErrAccessPolicyMissing
		}
		return entities.AccessPolicy{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateAccessPolicy(
	ctx context.Context,
	mutate ports.AccessMutation,
	events func(entities.AccessPolicy) ([]ports.EventEnvelope, error),
) (entities.AccessPolicy, error) {
	var updated entities.AccessPolicy
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row accessPolicyModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", accessPolicyRowID).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrAccessPolicyMissing
			}
			return err
		}
		policy := row.toEntity()
		if err := mutate(&policy); err != nil {
			return err
		}
		if err := tx.Model(&accessPolicyModel{}).
			Where("id = ?", accessPolicyRowID).
			Updates(map[string]any{
				"admin":            policy.Admin,
				"reports_identity": policy.ReportsIdentity,
				"updated_at":       policy.UpdatedAt.UTC(),
			}).
			Error; err != nil {
			return err
		}
		if events != nil {
			envelopes, err := events(policy)
			if err != nil {
				return err
			}
			for _, envelope := range envelopes {
				if err := insertOutboxEnvelopeTx(tx, envelope); err != nil {
					return err
				}
			}
		}
		updated = policy
		return nil
	})
	if err != nil {
		if !isDomainError(err) {
			r.logError("access_policy_update_failed", err)
		}
		return entities.AccessPolicy{}, err
	}
	return updated, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("seq ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	return nil
}

func loadElection(tx *gorm.DB, electionID int, forUpdate bool) (entities.Election, error) {
	query := tx
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var row electionModel
	if err := query.Where("election_id = ?", electionID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, domainerrors.ErrElectionNotFound
		}
		return entities.Election{}, err
	}
	var members []memberModel
	if err := tx.Where("election_id = ?", electionID).
		Order("position ASC").
		Find(&members).
		Error; err != nil {
		return entities.Election{}, err
	}
	return electionFromRows(row, members), nil
}

// replaceMembersTx rewrites the ledger of one election. It runs under the
// election row lock, so readers see either the old or the new ledger.
func replaceMembersTx(tx *gorm.DB, election entities.Election) error {
	if err := tx.Where("election_id = ?", election.ElectionID).
		Delete(&memberModel{}).
		Error; err != nil {
		return err
	}
	rows := memberModelsFromEntity(election)
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func appendEventsTx(tx *gorm.DB, events ports.ElectionEvents, election entities.Election) error {
	if events == nil {
		return nil
	}
	envelopes, err := events(election.Clone())
	if err != nil {
		return err
	}
	for _, envelope := range envelopes {
		if err := insertOutboxEnvelopeTx(tx, envelope); err != nil {
			return err
		}
	}
	return nil
}

func insertOutboxEnvelopeTx(tx *gorm.DB, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return tx.Create(&row).Error
}

func (r *Repository) logError(event string, err error, attrs ...any) {
	fields := []any{
		"event", event,
		"module", "civic-governance/election-authority",
		"layer", "adapter",
		"error", err.Error(),
	}
	fields = append(fields, attrs...)
	r.logger.Error("election authority repository operation failed", fields...)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isDomainError(err error) bool {
	for _, target := range []error{
		domainerrors.ErrElectionNotFound,
		domainerrors.ErrElectionNotStarted,
		domainerrors.ErrElectionInProgress,
		domainerrors.ErrElectionFinished,
		domainerrors.ErrMemberExists,
		domainerrors.ErrCandidateNotFound,
		domainerrors.ErrVoterNotFound,
		domainerrors.ErrVoterAlreadyVoted,
		domainerrors.ErrInsufficientPrivileges,
		domainerrors.ErrInvalidInput,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
