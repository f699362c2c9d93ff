package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vrcosta/imob-backoffice/internal/entity"
)

var ErrDuplicateLead = errors.New("lead já cadastrado para este e-mail")

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, real_estate_id, name, email, phone, status, interest_type,
	property_type_id, budget_min, budget_max, source, assigned_to, notes,
	created_at, updated_at`

func (r *LeadRepository) List(ctx context.Context, realEstateID string, filters entity.LeadFilters) ([]*entity.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE real_estate_id = $1`, leadColumns)
	args := []interface{}{realEstateID}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		n := len(args)
		query += fmt.Sprintf(` AND (name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)`, n, n, n)
	}
	if filters.Status != "" {
		args = append(args, string(filters.Status))
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filters.InterestType != "" {
		args = append(args, string(filters.InterestType))
		query += fmt.Sprintf(` AND interest_type = $%d`, len(args))
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeads(rows)
}

func (r *LeadRepository) ListActive(ctx context.Context, realEstateID string) ([]*entity.Lead, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM leads
		WHERE real_estate_id = $1
		  AND status NOT IN ('fechado', 'perdido')
		ORDER BY updated_at ASC
	`, leadColumns)

	rows, err := r.DB.QueryContext(ctx, query, realEstateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeads(rows)
}

func (r *LeadRepository) ListCreatedSince(ctx context.Context, realEstateID string, since time.Time) ([]*entity.Lead, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM leads
		WHERE real_estate_id = $1 AND created_at >= $2
		ORDER BY created_at ASC
	`, leadColumns)

	rows, err := r.DB.QueryContext(ctx, query, realEstateID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeads(rows)
}

func (r *LeadRepository) FindByID(ctx context.Context, realEstateID, id string) (*entity.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE real_estate_id = $1 AND id = $2`, leadColumns)

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, realEstateID, id))
	if err != nil {
		return nil, fmt.Errorf("lead não encontrado: %w", err)
	}
	return lead, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			id, real_estate_id, name, email, phone, status, interest_type,
			property_type_id, budget_min, budget_max, source, assigned_to,
			notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, '')::uuid, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.RealEstateID,
		lead.Name,
		nullString(lead.Email),
		nullString(lead.Phone),
		string(lead.Status),
		nullString(string(lead.InterestType)),
		lead.PropertyTypeID,
		lead.BudgetMin,
		lead.BudgetMax,
		nullString(lead.Source),
		nullString(lead.AssignedTo),
		nullString(lead.Notes),
		lead.CreatedAt,
		lead.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateLead
		}
		return fmt.Errorf("falha ao inserir lead: %w", err)
	}

	return nil
}

func (r *LeadRepository) UpsertByEmail(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, real_estate_id, name, email, phone, status, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (real_estate_id, email)
		DO UPDATE SET
			name = COALESCE(EXCLUDED.name, leads.name),
			phone = COALESCE(EXCLUDED.phone, leads.phone),
			updated_at = NOW()
		RETURNING id, status, created_at, updated_at
	`

	var status string
	err := r.DB.QueryRowContext(
		ctx,
		query,
		lead.ID,
		lead.RealEstateID,
		lead.Name,
		lead.Email,
		nullString(lead.Phone),
		string(lead.Status),
		nullString(lead.Source),
	).Scan(
		&lead.ID,
		&status,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return err
	}

	lead.Status = entity.LeadStatus(status)
	return nil
}

// UpdateStatus troca o status e carimba updated_at em um único UPDATE com
// RETURNING: a dupla status/updated_at sempre corresponde a uma transição.
func (r *LeadRepository) UpdateStatus(ctx context.Context, realEstateID, id string, status entity.LeadStatus, now time.Time) (*entity.Lead, error) {
	query := fmt.Sprintf(`
		UPDATE leads
		SET status = $1, updated_at = $2
		WHERE real_estate_id = $3 AND id = $4
		RETURNING %s
	`, leadColumns)

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, string(status), now, realEstateID, id))
	if err != nil {
		return nil, fmt.Errorf("falha na transição de status: %w", err)
	}
	return lead, nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads
		SET name = $1, email = $2, phone = $3, status = $4, interest_type = $5,
		    property_type_id = NULLIF($6, '')::uuid, budget_min = $7, budget_max = $8,
		    source = $9, assigned_to = $10, notes = $11, updated_at = $12
		WHERE real_estate_id = $13 AND id = $14
	`

	result, err := r.DB.ExecContext(ctx, query,
		lead.Name,
		nullString(lead.Email),
		nullString(lead.Phone),
		string(lead.Status),
		nullString(string(lead.InterestType)),
		lead.PropertyTypeID,
		lead.BudgetMin,
		lead.BudgetMax,
		nullString(lead.Source),
		nullString(lead.AssignedTo),
		nullString(lead.Notes),
		lead.UpdatedAt,
		lead.RealEstateID,
		lead.ID,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar lead: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, realEstateID, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM leads WHERE real_estate_id = $1 AND id = $2`, realEstateID, id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var email, phone, interest, propertyTypeID, source, assignedTo, notes sql.NullString

	err := row.Scan(
		&lead.ID,
		&lead.RealEstateID,
		&lead.Name,
		&email,
		&phone,
		&lead.Status,
		&interest,
		&propertyTypeID,
		&lead.BudgetMin,
		&lead.BudgetMax,
		&source,
		&assignedTo,
		&notes,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Email = email.String
	lead.Phone = phone.String
	lead.InterestType = entity.PropertyPurpose(interest.String)
	lead.PropertyTypeID = propertyTypeID.String
	lead.Source = source.String
	lead.AssignedTo = assignedTo.String
	lead.Notes = notes.String
	return &lead, nil
}

func scanLeads(rows *sql.Rows) ([]*entity.Lead, error) {
	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
