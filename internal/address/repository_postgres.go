package address

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const addressColumns = `address_id, user_id, name, street, city, state, zip, phone, type, created_at, updated_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanAddress(row interface{ Scan(...any) error }) (Address, error) {
	var a Address
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Street, &a.City, &a.State, &a.Zip, &a.Phone,
		&a.Type, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *PostgresRepository) ListByUser(userID int) ([]Address, error) {
	rows, err := r.db.Query(`SELECT `+addressColumns+` FROM address WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(userID int, id string) (Address, error) {
	a, err := scanAddress(r.db.QueryRow(`SELECT `+addressColumns+` FROM address WHERE user_id = $1 AND address_id = $2`, userID, id))
	if err == sql.ErrNoRows {
		return Address{}, ErrNotFound
	}
	return a, err
}

func (r *PostgresRepository) Create(a Address) (Address, error) {
	_, err := r.db.Exec(`INSERT INTO address (address_id, user_id, name, street, city, state, zip, phone, type, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		a.ID, a.UserID, a.Name, a.Street, a.City, a.State, a.Zip, a.Phone, a.Type, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return Address{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Update(a Address) (Address, error) {
	out, err := scanAddress(r.db.QueryRow(`UPDATE address
		SET name=$3, street=$4, city=$5, state=$6, zip=$7, phone=$8, type=$9, updated_at=$10
		WHERE user_id=$1 AND address_id=$2
		RETURNING `+addressColumns,
		a.UserID, a.ID, a.Name, a.Street, a.City, a.State, a.Zip, a.Phone, a.Type, a.UpdatedAt))
	if err == sql.ErrNoRows {
		return Address{}, ErrNotFound
	}
	return out, err
}

func (r *PostgresRepository) Delete(userID int, id string) error {
	res, err := r.db.Exec(`DELETE FROM address WHERE user_id = $1 AND address_id = $2`, userID, id)
	if err != nil {
		return err
	}
	cnt, _ := res.RowsAffected()
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}
