package product

import (
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

var productRowColumns = []string{"product_id", "title", "slug", "brand", "category", "description", "specs",
	"rating", "reviews", "price", "discount_percent", "final_price", "stock", "image", "images",
	"is_new_item", "is_trending", "is_best_deal", "condition", "config_options", "created_at", "updated_at"}

func productRow(id int, title string, finalPrice int64) []driver.Value {
	return []driver.Value{id, title, "", "HP", "Business Laptops", "d", []byte(`{"ram":"8GB"}`),
		4.5, 12, finalPrice, int64(0), finalPrice, 3, "img", []byte(`["a.jpg"]`),
		false, false, false, "Excellent", []byte(`{}`), "t", "u"}
}

func TestGetByID_DecodesJSONBColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows(productRowColumns).AddRow(productRow(9, "ProBook 450", 50000)...)
	mock.ExpectQuery("FROM product WHERE product_id").WithArgs(9).WillReturnRows(rows)

	p, err := repo.GetByID(9)
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if p.ID != 9 || p.Title != "ProBook 450" || p.FinalPrice != 50000 {
		t.Fatalf("unexpected product %+v", p)
	}
	if p.Specs.RAM != "8GB" {
		t.Errorf("specs jsonb not decoded: %+v", p.Specs)
	}
	if len(p.Images) != 1 || p.Images[0] != "a.jpg" {
		t.Errorf("images jsonb not decoded: %+v", p.Images)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM product WHERE product_id").WithArgs(404).
		WillReturnRows(sqlmock.NewRows(productRowColumns))

	if _, err := repo.GetByID(404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListByIDs_UsesArrayParam(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows(productRowColumns).
		AddRow(productRow(1, "A", 100)...).
		AddRow(productRow(2, "B", 200)...)
	mock.ExpectQuery("WHERE product_id = ANY").WithArgs(pq.Array([]int{1, 2})).WillReturnRows(rows)

	got, err := repo.ListByIDs([]int{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListByIDs_EmptyInputSkipsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	got, err := repo.ListByIDs(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM product").WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
