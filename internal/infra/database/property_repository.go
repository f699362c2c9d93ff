package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vrcosta/imob-backoffice/internal/entity"
)

type PropertyRepository struct {
	DB *sql.DB
}

func NewPropertyRepository(db *sql.DB) *PropertyRepository {
	return &PropertyRepository{DB: db}
}

const propertyColumns = `id, real_estate_id, code, title, description, property_type_id,
	purpose, status, address, number, complement, neighborhood, city, state, zip_code,
	bedrooms, bathrooms, suites, parking_spaces, area_total, area_util,
	sale_price, rent_price, condominium_fee, iptu, featured, published,
	created_by, created_at, updated_at`

func (r *PropertyRepository) List(ctx context.Context, realEstateID string, filters entity.PropertyFilters) ([]*entity.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE real_estate_id = $1`, propertyColumns)
	args := []interface{}{realEstateID}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		n := len(args)
		query += fmt.Sprintf(` AND (title ILIKE $%d OR code ILIKE $%d OR address ILIKE $%d)`, n, n, n)
	}
	if filters.PropertyTypeID != "" {
		args = append(args, filters.PropertyTypeID)
		query += fmt.Sprintf(` AND property_type_id = $%d`, len(args))
	}
	if filters.Purpose != "" {
		args = append(args, string(filters.Purpose))
		query += fmt.Sprintf(` AND purpose = $%d`, len(args))
	}
	if filters.Status != "" {
		args = append(args, string(filters.Status))
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []*entity.Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}
	return properties, rows.Err()
}

func (r *PropertyRepository) FindByID(ctx context.Context, realEstateID, id string) (*entity.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE real_estate_id = $1 AND id = $2`, propertyColumns)

	property, err := scanProperty(r.DB.QueryRowContext(ctx, query, realEstateID, id))
	if err != nil {
		return nil, fmt.Errorf("imóvel não encontrado: %w", err)
	}
	return property, nil
}

func (r *PropertyRepository) CountByStatus(ctx context.Context, realEstateID string, status entity.PropertyStatus) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM properties WHERE real_estate_id = $1 AND status = $2`,
		realEstateID, string(status),
	).Scan(&count)
	return count, err
}

func (r *PropertyRepository) Create(ctx context.Context, p *entity.Property) error {
	query := `
		INSERT INTO properties (
			id, real_estate_id, code, title, description, property_type_id,
			purpose, status, address, number, complement, neighborhood, city,
			state, zip_code, bedrooms, bathrooms, suites, parking_spaces,
			area_total, area_util, sale_price, rent_price, condominium_fee,
			iptu, featured, published, created_by, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25,
			$26, $27, $28, $29, $30
		)
	`

	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.RealEstateID, nullString(p.Code), p.Title, nullString(p.Description),
		p.PropertyTypeID, string(p.Purpose), string(p.Status),
		nullString(p.Address), nullString(p.Number), nullString(p.Complement),
		nullString(p.Neighborhood), nullString(p.City), nullString(p.State),
		nullString(p.ZipCode), p.Bedrooms, p.Bathrooms, p.Suites, p.ParkingSpaces,
		p.AreaTotal, p.AreaUtil, p.SalePrice, p.RentPrice, p.CondominiumFee,
		p.IPTU, p.Featured, p.Published, nullString(p.CreatedBy),
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir imóvel: %w", err)
	}
	return nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *entity.Property) error {
	query := `
		UPDATE properties
		SET code = $1, title = $2, description = $3,
		    property_type_id = NULLIF($4, '')::uuid, purpose = $5, status = $6,
		    address = $7, number = $8, complement = $9, neighborhood = $10,
		    city = $11, state = $12, zip_code = $13, bedrooms = $14,
		    bathrooms = $15, suites = $16, parking_spaces = $17,
		    area_total = $18, area_util = $19, sale_price = $20,
		    rent_price = $21, condominium_fee = $22, iptu = $23,
		    featured = $24, published = $25, updated_at = $26
		WHERE real_estate_id = $27 AND id = $28
	`

	result, err := r.DB.ExecContext(ctx, query,
		nullString(p.Code), p.Title, nullString(p.Description),
		p.PropertyTypeID, string(p.Purpose), string(p.Status),
		nullString(p.Address), nullString(p.Number), nullString(p.Complement),
		nullString(p.Neighborhood), nullString(p.City), nullString(p.State),
		nullString(p.ZipCode), p.Bedrooms, p.Bathrooms, p.Suites, p.ParkingSpaces,
		p.AreaTotal, p.AreaUtil, p.SalePrice, p.RentPrice, p.CondominiumFee,
		p.IPTU, p.Featured, p.Published, p.UpdatedAt,
		p.RealEstateID, p.ID,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar imóvel: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, realEstateID, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM properties WHERE real_estate_id = $1 AND id = $2`, realEstateID, id)
	return err
}

func scanProperty(row rowScanner) (*entity.Property, error) {
	var p entity.Property
	var code, description, propertyTypeID, address, number, complement sql.NullString
	var neighborhood, city, state, zipCode, createdBy sql.NullString

	err := row.Scan(
		&p.ID, &p.RealEstateID, &code, &p.Title, &description, &propertyTypeID,
		&p.Purpose, &p.Status, &address, &number, &complement, &neighborhood,
		&city, &state, &zipCode, &p.Bedrooms, &p.Bathrooms, &p.Suites,
		&p.ParkingSpaces, &p.AreaTotal, &p.AreaUtil, &p.SalePrice, &p.RentPrice,
		&p.CondominiumFee, &p.IPTU, &p.Featured, &p.Published, &createdBy,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Code = code.String
	p.Description = description.String
	p.PropertyTypeID = propertyTypeID.String
	p.Address = address.String
	p.Number = number.String
	p.Complement = complement.String
	p.Neighborhood = neighborhood.String
	p.City = city.String
	p.State = state.String
	p.ZipCode = zipCode.String
	p.CreatedBy = createdBy.String
	return &p, nil
}

type PropertyTypeRepository struct {
	DB *sql.DB
}

func NewPropertyTypeRepository(db *sql.DB) *PropertyTypeRepository {
	return &PropertyTypeRepository{DB: db}
}

func (r *PropertyTypeRepository) List(ctx context.Context) ([]*entity.PropertyType, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name FROM property_types ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*entity.PropertyType
	for rows.Next() {
		var pt entity.PropertyType
		if err := rows.Scan(&pt.ID, &pt.Name); err != nil {
			return nil, err
		}
		types = append(types, &pt)
	}
	return types, rows.Err()
}
