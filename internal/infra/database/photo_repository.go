package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vrcosta/imob-backoffice/internal/entity"
)

type PropertyPhotoRepository struct {
	DB *sql.DB
}

func NewPropertyPhotoRepository(db *sql.DB) *PropertyPhotoRepository {
	return &PropertyPhotoRepository{DB: db}
}

func (r *PropertyPhotoRepository) ListByProperty(ctx context.Context, propertyID string) ([]*entity.PropertyPhoto, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, property_id, url, COALESCE(title, ''), is_cover, order_index, created_at
		FROM property_photos
		WHERE property_id = $1
		ORDER BY order_index ASC
	`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []*entity.PropertyPhoto
	for rows.Next() {
		var photo entity.PropertyPhoto
		err := rows.Scan(&photo.ID, &photo.PropertyID, &photo.URL,
			&photo.Title, &photo.IsCover, &photo.OrderIndex, &photo.CreatedAt)
		if err != nil {
			return nil, err
		}
		photos = append(photos, &photo)
	}
	return photos, rows.Err()
}

// Create insere a foto; capa nova desmarca a anterior na mesma transação
// para nunca existirem duas capas.
func (r *PropertyPhotoRepository) Create(ctx context.Context, photo *entity.PropertyPhoto) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if photo.IsCover {
		_, err = tx.ExecContext(ctx,
			`UPDATE property_photos SET is_cover = FALSE WHERE property_id = $1`,
			photo.PropertyID)
		if err != nil {
			return fmt.Errorf("falha ao desmarcar capa anterior: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO property_photos (id, property_id, url, title, is_cover, order_index, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
	`, photo.ID, photo.PropertyID, photo.URL, photo.Title,
		photo.IsCover, photo.OrderIndex, photo.CreatedAt)
	if err != nil {
		return fmt.Errorf("falha ao inserir foto: %w", err)
	}

	return tx.Commit()
}

func (r *PropertyPhotoRepository) Delete(ctx context.Context, propertyID, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM property_photos WHERE id = $1 AND property_id = $2`,
		id, propertyID)
	return err
}
