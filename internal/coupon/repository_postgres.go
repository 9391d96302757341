package coupon

import (
	"database/sql"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

const couponColumns = `coupon_id, code, type, value, min_order_value, expiry_date, usage_limit, used_count, is_active, created_at, updated_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Coupon, error) {
	rows, err := r.db.Query(`SELECT ` + couponColumns + ` FROM coupon ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Coupon, 0)
	for rows.Next() {
		var cp Coupon
		if err := rows.Scan(&cp.ID, &cp.Code, &cp.Type, &cp.Value, &cp.MinOrderValue, &cp.ExpiryDate,
			&cp.UsageLimit, &cp.UsedCount, &cp.IsActive, &cp.CreatedAt, &cp.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByCode(code string) (Coupon, error) {
	var cp Coupon
	err := r.db.QueryRow(`SELECT `+couponColumns+` FROM coupon WHERE code = $1`, strings.ToUpper(code)).
		Scan(&cp.ID, &cp.Code, &cp.Type, &cp.Value, &cp.MinOrderValue, &cp.ExpiryDate,
			&cp.UsageLimit, &cp.UsedCount, &cp.IsActive, &cp.CreatedAt, &cp.UpdatedAt)
	if err == sql.ErrNoRows {
		return Coupon{}, ErrNotFound
	}
	return cp, err
}

func (r *PostgresRepository) Create(cp Coupon) (Coupon, error) {
	cp.Code = strings.ToUpper(cp.Code)
	err := r.db.QueryRow(`INSERT INTO coupon (code, type, value, min_order_value, expiry_date, usage_limit, used_count, is_active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING coupon_id`,
		cp.Code, cp.Type, cp.Value, cp.MinOrderValue, cp.ExpiryDate, cp.UsageLimit, cp.UsedCount,
		cp.IsActive, cp.CreatedAt, cp.UpdatedAt).Scan(&cp.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return Coupon{}, ErrCodeExists
		}
		return Coupon{}, err
	}
	return cp, nil
}

func (r *PostgresRepository) Update(id int, cp Coupon) (Coupon, error) {
	cp.Code = strings.ToUpper(cp.Code)
	err := r.db.QueryRow(`UPDATE coupon SET code=$2, type=$3, value=$4, min_order_value=$5, expiry_date=$6,
			usage_limit=$7, is_active=$8, updated_at=$9
		WHERE coupon_id=$1
		RETURNING `+couponColumns,
		id, cp.Code, cp.Type, cp.Value, cp.MinOrderValue, cp.ExpiryDate, cp.UsageLimit, cp.IsActive, cp.UpdatedAt).
		Scan(&cp.ID, &cp.Code, &cp.Type, &cp.Value, &cp.MinOrderValue, &cp.ExpiryDate,
			&cp.UsageLimit, &cp.UsedCount, &cp.IsActive, &cp.CreatedAt, &cp.UpdatedAt)
	if err == sql.ErrNoRows {
		return Coupon{}, ErrNotFound
	}
	if err != nil {
		return Coupon{}, err
	}
	return cp, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM coupon WHERE coupon_id = $1`, id)
	if err != nil {
		return err
	}
	cnt, _ := res.RowsAffected()
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) IncrementUsage(code string) error {
	res, err := r.db.Exec(`UPDATE coupon SET used_count = used_count + 1 WHERE code = $1`, strings.ToUpper(code))
	if err != nil {
		return err
	}
	cnt, _ := res.RowsAffected()
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}
