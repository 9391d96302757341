package product

import "testing"

func TestComputeFinalPrice(t *testing.T) {
	cases := []struct {
		price, discount, want int64
	}{
		{60000, 0, 60000},
		{60000, 10, 54000},
		{60000, 100, 0},
		{999, 10, 900},
		{50000, -5, 50000},
	}
	for _, tc := range cases {
		if got := ComputeFinalPrice(tc.price, tc.discount); got != tc.want {
			t.Errorf("ComputeFinalPrice(%d, %d) = %d, want %d", tc.price, tc.discount, got, tc.want)
		}
	}
}

func TestCreate_AppliesDefaultsAndDerivesFinalPrice(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil))

	created, err := s.Create(Product{
		Title:           "ThinkBook 14",
		Category:        "Business Laptops",
		Price:           60000,
		DiscountPercent: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.FinalPrice != 54000 {
		t.Errorf("expected final price 54000, got %d", created.FinalPrice)
	}
	if created.Condition != "Excellent" {
		t.Errorf("expected default condition Excellent, got %q", created.Condition)
	}
	if len(created.ConfigOptions.RAM) != 3 || len(created.ConfigOptions.Storage) != 3 || len(created.ConfigOptions.Warranty) != 3 {
		t.Errorf("default config options not applied: %+v", created.ConfigOptions)
	}
}

func TestCreate_KeepsExplicitConfigOptions(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil))

	custom := []ConfigOption{{Label: "64GB RAM", Value: "64GB", Price: 15000}}
	created, err := s.Create(Product{
		Title:         "Monster WS",
		Category:      "Workstations",
		Price:         180000,
		ConfigOptions: ConfigOptions{RAM: custom},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(created.ConfigOptions.RAM) != 1 || created.ConfigOptions.RAM[0].Value != "64GB" {
		t.Errorf("explicit RAM options overwritten: %+v", created.ConfigOptions.RAM)
	}
	// unsupplied axes still get defaults
	if len(created.ConfigOptions.Storage) == 0 {
		t.Error("storage axis should fall back to defaults")
	}
}

func TestCreate_Validation(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil))

	cases := []Product{
		{Title: "", Price: 100},
		{Title: "X", Price: -1},
		{Title: "X", Price: 100, DiscountPercent: 101},
		{Title: "X", Price: 100, Category: "Fridges"},
		{Title: "X", Price: 100, Condition: "Scrap"},
	}
	for i, p := range cases {
		if _, err := s.Create(p); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestFindOption(t *testing.T) {
	co := DefaultConfigOptions

	opt, ok := co.FindOption("ram", "16GB")
	if !ok || opt.Price != 4000 {
		t.Errorf("expected 16GB at 4000, got %+v ok=%v", opt, ok)
	}
	if _, ok := co.FindOption("ram", "128GB"); ok {
		t.Error("unknown value should not match")
	}
	if _, ok := co.FindOption("gpu", "RTX"); ok {
		t.Error("unknown axis should not match")
	}
}

func TestListByIDs_InMemory(t *testing.T) {
	repo := NewInMemoryRepository([]Product{
		{ID: 1, Title: "A", Price: 100},
		{ID: 2, Title: "B", Price: 200},
	})

	got, err := repo.ListByIDs([]int{2, 99})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("expected only product 2, got %+v", got)
	}
}
