package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vrcosta/imob-backoffice/internal/entity"
)

type RentalRepository struct {
	DB *sql.DB
}

func NewRentalRepository(db *sql.DB) *RentalRepository {
	return &RentalRepository{DB: db}
}

const rentalColumns = `id, real_estate_id, property_id, code, status, rent_value,
	condominium_fee, iptu, start_date, end_date, guarantee_type, guarantee_value,
	guarantee_description, adjustment_index, adjustment_month, notes,
	created_by, created_at, updated_at`

func (r *RentalRepository) List(ctx context.Context, realEstateID string) ([]*entity.Rental, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM rentals WHERE real_estate_id = $1 ORDER BY created_at DESC
	`, rentalColumns)

	rows, err := r.DB.QueryContext(ctx, query, realEstateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []*entity.Rental
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, rental)
	}
	return rentals, rows.Err()
}

func (r *RentalRepository) FindByID(ctx context.Context, realEstateID, id string) (*entity.Rental, error) {
	query := fmt.Sprintf(`SELECT %s FROM rentals WHERE real_estate_id = $1 AND id = $2`, rentalColumns)

	rental, err := scanRental(r.DB.QueryRowContext(ctx, query, realEstateID, id))
	if err != nil {
		return nil, fmt.Errorf("contrato não encontrado: %w", err)
	}
	return rental, nil
}

func (r *RentalRepository) CountByStatus(ctx context.Context, realEstateID string, status entity.RentalStatus) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rentals WHERE real_estate_id = $1 AND status = $2`,
		realEstateID, string(status),
	).Scan(&count)
	return count, err
}

func (r *RentalRepository) Create(ctx context.Context, rental *entity.Rental) error {
	query := `
		INSERT INTO rentals (
			id, real_estate_id, property_id, code, status, rent_value,
			condominium_fee, iptu, start_date, end_date, guarantee_type,
			guarantee_value, guarantee_description, adjustment_index,
			adjustment_month, notes, created_by, created_at, updated_at
		) VALUES (
			$1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9, $10,
			NULLIF($11, ''), $12, $13, $14, $15, $16, $17, $18, $19
		)
	`

	_, err := r.DB.ExecContext(ctx, query,
		rental.ID, rental.RealEstateID, rental.PropertyID,
		nullString(rental.Code), string(rental.Status), rental.RentValue,
		rental.CondominiumFee, rental.IPTU, rental.StartDate, rental.EndDate,
		string(rental.GuaranteeType), rental.GuaranteeValue,
		nullString(rental.GuaranteeDescription), nullString(rental.AdjustmentIndex),
		rental.AdjustmentMonth, nullString(rental.Notes),
		nullString(rental.CreatedBy), rental.CreatedAt, rental.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir contrato: %w", err)
	}
	return nil
}

func (r *RentalRepository) Update(ctx context.Context, rental *entity.Rental) error {
	query := `
		UPDATE rentals
		SET property_id = NULLIF($1, '')::uuid, code = $2, status = $3,
		    rent_value = $4, condominium_fee = $5, iptu = $6, start_date = $7,
		    end_date = $8, guarantee_type = NULLIF($9, ''), guarantee_value = $10,
		    guarantee_description = $11, adjustment_index = $12,
		    adjustment_month = $13, notes = $14, updated_at = $15
		WHERE real_estate_id = $16 AND id = $17
	`

	result, err := r.DB.ExecContext(ctx, query,
		rental.PropertyID, nullString(rental.Code), string(rental.Status),
		rental.RentValue, rental.CondominiumFee, rental.IPTU,
		rental.StartDate, rental.EndDate, string(rental.GuaranteeType),
		rental.GuaranteeValue, nullString(rental.GuaranteeDescription),
		nullString(rental.AdjustmentIndex), rental.AdjustmentMonth,
		nullString(rental.Notes), rental.UpdatedAt,
		rental.RealEstateID, rental.ID,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar contrato: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *RentalRepository) Delete(ctx context.Context, realEstateID, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM rentals WHERE real_estate_id = $1 AND id = $2`, realEstateID, id)
	return err
}

func scanRental(row rowScanner) (*entity.Rental, error) {
	var rental entity.Rental
	var propertyID, code, guaranteeType, guaranteeDesc sql.NullString
	var adjustmentIndex, notes, createdBy sql.NullString
	var adjustmentMonth sql.NullInt64

	err := row.Scan(
		&rental.ID, &rental.RealEstateID, &propertyID, &code, &rental.Status,
		&rental.RentValue, &rental.CondominiumFee, &rental.IPTU,
		&rental.StartDate, &rental.EndDate, &guaranteeType,
		&rental.GuaranteeValue, &guaranteeDesc, &adjustmentIndex,
		&adjustmentMonth, &notes, &createdBy,
		&rental.CreatedAt, &rental.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rental.PropertyID = propertyID.String
	rental.Code = code.String
	rental.GuaranteeType = entity.GuaranteeType(guaranteeType.String)
	rental.GuaranteeDescription = guaranteeDesc.String
	rental.AdjustmentIndex = adjustmentIndex.String
	rental.AdjustmentMonth = int(adjustmentMonth.Int64)
	rental.Notes = notes.String
	rental.CreatedBy = createdBy.String
	return &rental, nil
}
