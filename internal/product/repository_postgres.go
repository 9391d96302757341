package product

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
)

// PostgresRepository stores products in the `product` table. Document-shaped
// fields (specs, images, config options) live in jsonb columns.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `product_id, title, slug, brand, category, description, specs, rating, reviews,
		price, discount_percent, final_price, stock, image, images, is_new_item, is_trending,
		is_best_deal, condition, config_options, created_at, updated_at`

func (r *PostgresRepository) scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	var specsJSON, imagesJSON, configJSON []byte
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Brand, &p.Category, &p.Description, &specsJSON,
		&p.Rating, &p.Reviews, &p.Price, &p.DiscountPercent, &p.FinalPrice, &p.Stock, &p.Image,
		&imagesJSON, &p.IsNewItem, &p.IsTrending, &p.IsBestDeal, &p.Condition, &configJSON,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	json.Unmarshal(specsJSON, &p.Specs)
	json.Unmarshal(imagesJSON, &p.Images)
	json.Unmarshal(configJSON, &p.ConfigOptions)
	return p, nil
}

func (r *PostgresRepository) List(category string) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM product ORDER BY product_id`
	args := []any{}
	if category != "" {
		query = `SELECT ` + productColumns + ` FROM product WHERE category = $1 ORDER BY product_id`
		args = append(args, category)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM product WHERE product_id = $1`, id)
	p, err := r.scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) ListByIDs(ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	rows, err := r.db.Query(`SELECT `+productColumns+` FROM product WHERE product_id = ANY($1::int[])`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0, len(ids))
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	specsJSON, _ := json.Marshal(p.Specs)
	imagesJSON, _ := json.Marshal(p.Images)
	configJSON, _ := json.Marshal(p.ConfigOptions)

	row := r.db.QueryRow(`INSERT INTO product (title, slug, brand, category, description, specs, rating, reviews,
			price, discount_percent, final_price, stock, image, images, is_new_item, is_trending,
			is_best_deal, condition, config_options, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		RETURNING `+productColumns,
		p.Title, p.Slug, p.Brand, p.Category, p.Description, specsJSON, p.Rating, p.Reviews,
		p.Price, p.DiscountPercent, p.FinalPrice, p.Stock, p.Image, imagesJSON, p.IsNewItem,
		p.IsTrending, p.IsBestDeal, p.Condition, configJSON, p.CreatedAt, p.UpdatedAt)
	return r.scanProduct(row)
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	specsJSON, _ := json.Marshal(p.Specs)
	imagesJSON, _ := json.Marshal(p.Images)
	configJSON, _ := json.Marshal(p.ConfigOptions)

	row := r.db.QueryRow(`UPDATE product SET title=$2, slug=$3, brand=$4, category=$5, description=$6, specs=$7,
			rating=$8, reviews=$9, price=$10, discount_percent=$11, final_price=$12, stock=$13, image=$14,
			images=$15, is_new_item=$16, is_trending=$17, is_best_deal=$18, condition=$19, config_options=$20,
			updated_at=$21
		WHERE product_id=$1
		RETURNING `+productColumns,
		id, p.Title, p.Slug, p.Brand, p.Category, p.Description, specsJSON, p.Rating, p.Reviews,
		p.Price, p.DiscountPercent, p.FinalPrice, p.Stock, p.Image, imagesJSON, p.IsNewItem,
		p.IsTrending, p.IsBestDeal, p.Condition, configJSON, p.UpdatedAt)
	out, err := r.scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return out, err
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM product WHERE product_id = $1`, id)
	if err != nil {
		return err
	}
	cnt, _ := res.RowsAffected()
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}
