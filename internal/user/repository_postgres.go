package user

import (
	"database/sql"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

const userColumns = `user_id, name, email, password, mobile, role, is_profile_complete, default_address_id, status, created_at, updated_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	var email, password, defaultAddr sql.NullString
	err := row.Scan(&u.ID, &u.Name, &email, &password, &u.Mobile, &u.Role, &u.IsProfileComplete,
		&defaultAddr, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	u.Email = email.String
	u.Password = password.String
	u.DefaultAddressID = defaultAddr.String
	return u, nil
}

func (r *PostgresRepository) List() ([]User, error) {
	rows, err := r.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE user_id = $1`, id))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *PostgresRepository) GetByMobile(mobile string) (User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE mobile = $1`, mobile))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(`INSERT INTO users (name, email, password, mobile, role, is_profile_complete, default_address_id, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING user_id`,
		u.Name, nullIfEmpty(u.Email), nullIfEmpty(u.Password), u.Mobile, u.Role, u.IsProfileComplete,
		nullIfEmpty(u.DefaultAddressID), u.Status, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return User{}, ErrMobileExists
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	out, err := scanUser(r.db.QueryRow(`UPDATE users SET name=$2, email=$3, is_profile_complete=$4, updated_at=$5
		WHERE user_id=$1
		RETURNING `+userColumns,
		id, u.Name, nullIfEmpty(u.Email), u.IsProfileComplete, u.UpdatedAt))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return out, err
}

func (r *PostgresRepository) SetBlocked(id int, blocked bool) (User, error) {
	status := StatusActive
	if blocked {
		status = StatusBlocked
	}
	out, err := scanUser(r.db.QueryRow(`UPDATE users SET status=$2 WHERE user_id=$1 RETURNING `+userColumns, id, status))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return out, err
}

func (r *PostgresRepository) SetDefaultAddress(id int, addressID string) error {
	res, err := r.db.Exec(`UPDATE users SET default_address_id=$2 WHERE user_id=$1`, id, nullIfEmpty(addressID))
	if err != nil {
		return err
	}
	cnt, _ := res.RowsAffected()
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
