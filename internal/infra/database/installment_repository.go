package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vrcosta/imob-backoffice/internal/entity"
)

type InstallmentRepository struct {
	DB *sql.DB
}

func NewInstallmentRepository(db *sql.DB) *InstallmentRepository {
	return &InstallmentRepository{DB: db}
}

const installmentColumns = `id, rental_id, reference_month, status, rent_value,
	condominium_fee, iptu, late_fee, discount, other_charges, total_value,
	due_date, payment_date, paid_value, notes, created_at, updated_at`

func (r *InstallmentRepository) ListByRental(ctx context.Context, rentalID string) ([]*entity.RentalInstallment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM rental_installments
		WHERE rental_id = $1
		ORDER BY due_date ASC
	`, installmentColumns)

	rows, err := r.DB.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInstallments(rows)
}

func (r *InstallmentRepository) FindByID(ctx context.Context, id string) (*entity.RentalInstallment, error) {
	query := fmt.Sprintf(`SELECT %s FROM rental_installments WHERE id = $1`, installmentColumns)

	inst, err := scanInstallment(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("parcela não encontrada: %w", err)
	}
	return inst, nil
}

func (r *InstallmentRepository) Create(ctx context.Context, inst *entity.RentalInstallment) error {
	query := `
		INSERT INTO rental_installments (
			id, rental_id, reference_month, status, rent_value, condominium_fee,
			iptu, late_fee, discount, other_charges, total_value, due_date,
			payment_date, paid_value, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.DB.ExecContext(ctx, query,
		inst.ID, inst.RentalID, inst.ReferenceMonth, string(inst.Status),
		inst.RentValue, inst.CondominiumFee, inst.IPTU, inst.LateFee,
		inst.Discount, inst.OtherCharges, inst.TotalValue, inst.DueDate,
		inst.PaymentDate, inst.PaidValue, nullString(inst.Notes),
		inst.CreatedAt, inst.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir parcela: %w", err)
	}
	return nil
}

// Pay dá baixa na parcela em um único UPDATE: status, payment_date e
// paid_value sempre mudam juntos. O rental_id no WHERE fecha a porta para
// baixa em parcela de contrato alheio.
func (r *InstallmentRepository) Pay(ctx context.Context, rentalID, id string, paymentDate time.Time, paidValue float64) (*entity.RentalInstallment, error) {
	query := fmt.Sprintf(`
		UPDATE rental_installments
		SET status = 'pago', payment_date = $1, paid_value = $2, updated_at = NOW()
		WHERE id = $3 AND rental_id = $4 AND status <> 'cancelado'
		RETURNING %s
	`, installmentColumns)

	inst, err := scanInstallment(r.DB.QueryRowContext(ctx, query, paymentDate, paidValue, id, rentalID))
	if err != nil {
		return nil, fmt.Errorf("falha ao dar baixa na parcela: %w", err)
	}
	return inst, nil
}

// ListPaidBetween filtra por payment_date — parcela sem baixa não entra no
// faturamento. Janela meio-aberta [from, to): baixa na virada do mês conta
// uma única vez.
func (r *InstallmentRepository) ListPaidBetween(ctx context.Context, realEstateID string, from, to time.Time) ([]*entity.RentalInstallment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM rental_installments i
		WHERE i.status = 'pago'
		  AND i.payment_date IS NOT NULL
		  AND i.payment_date >= $1
		  AND i.payment_date < $2
		  AND EXISTS (
			SELECT 1 FROM rentals r
			WHERE r.id = i.rental_id AND r.real_estate_id = $3
		  )
		ORDER BY i.payment_date ASC
	`, installmentColumns)

	rows, err := r.DB.QueryContext(ctx, query, from, to, realEstateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInstallments(rows)
}

// MarkOverdue vira pendente -> atrasado para tudo que passou do vencimento.
func (r *InstallmentRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE rental_installments
		SET status = 'atrasado', updated_at = NOW()
		WHERE status = 'pendente' AND due_date < $1
	`, now)
	if err != nil {
		return 0, fmt.Errorf("falha ao marcar parcelas atrasadas: %w", err)
	}
	return result.RowsAffected()
}

func scanInstallment(row rowScanner) (*entity.RentalInstallment, error) {
	var inst entity.RentalInstallment
	var notes sql.NullString

	err := row.Scan(
		&inst.ID, &inst.RentalID, &inst.ReferenceMonth, &inst.Status,
		&inst.RentValue, &inst.CondominiumFee, &inst.IPTU, &inst.LateFee,
		&inst.Discount, &inst.OtherCharges, &inst.TotalValue, &inst.DueDate,
		&inst.PaymentDate, &inst.PaidValue, &notes,
		&inst.CreatedAt, &inst.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	inst.Notes = notes.String
	return &inst, nil
}

func scanInstallments(rows *sql.Rows) ([]*entity.RentalInstallment, error) {
	var installments []*entity.RentalInstallment
	for rows.Next() {
		inst, err := scanInstallment(rows)
		if err != nil {
			return nil, err
		}
		installments = append(installments, inst)
	}
	return installments, rows.Err()
}
