package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
	testhelpers "github.com/polkiloo/meatmarket/internal/test"
)

func TestCreateProductValidation(t *testing.T) {
	uc := NewCatalogUseCase(testhelpers.NewProductRepositoryStub())

	cases := []struct {
		name    string
		product model.Product
	}{
		{"empty name", model.Product{Category: "beef", Unit: model.UnitKilogram, Price: d("10")}},
		{"empty category", model.Product{Name: "Ribeye", Unit: model.UnitKilogram, Price: d("10")}},
		{"bad unit", model.Product{Name: "Ribeye", Category: "beef", Unit: "crate", Price: d("10")}},
		{"zero price", model.Product{Name: "Ribeye", Category: "beef", Unit: model.UnitKilogram}},
		{"negative cost", model.Product{Name: "Ribeye", Category: "beef", Unit: model.UnitKilogram, Price: d("10"), CostPrice: d("-1")}},
	}
	for _, c := range cases {
		if _, err := uc.CreateProduct(context.Background(), &c.product); !errors.Is(err, domainErrors.ErrInvalidAmount) {
			t.Fatalf("%s: err = %v, want invalid amount", c.name, err)
		}
	}
}

func TestCreateProductTrimsFields(t *testing.T) {
	uc := NewCatalogUseCase(testhelpers.NewProductRepositoryStub())

	created, err := uc.CreateProduct(context.Background(), &model.Product{
		Name:     "  Ribeye ",
		Category: " beef ",
		Unit:     model.UnitKilogram,
		Price:    d("28.50"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Ribeye" || created.Category != "beef" {
		t.Fatalf("fields not trimmed: %+v", created)
	}
	if created.ID == 0 {
		t.Fatalf("product not assigned an id")
	}
}

func TestListFiltersInactive(t *testing.T) {
	products := testhelpers.NewProductRepositoryStub()
	products.Add(model.Product{Name: "Ribeye", Category: "beef", Unit: model.UnitKilogram, Price: d("28.50"), Active: true}, d("5"))
	products.Add(model.Product{Name: "Old cut", Category: "beef", Unit: model.UnitKilogram, Price: d("10"), Active: false}, d("5"))
	uc := NewCatalogUseCase(products)

	listed, err := uc.List(context.Background(), repository.ProductFilter{OnlyActive: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "Ribeye" {
		t.Fatalf("unexpected listing %+v", listed)
	}
}

func TestAdjustStock(t *testing.T) {
	products := testhelpers.NewProductRepositoryStub()
	p := products.Add(model.Product{Name: "Ribeye", Category: "beef", Unit: model.UnitKilogram, Price: d("28.50"), Active: true}, d("5"))
	uc := NewCatalogUseCase(products)

	stock, err := uc.AdjustStock(context.Background(), p.ID, d("2.5"))
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if !stock.Quantity.Equal(d("7.5")) {
		t.Fatalf("quantity = %s, want 7.5", stock.Quantity)
	}

	if _, err := uc.AdjustStock(context.Background(), p.ID, decimal.Zero); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("zero delta = %v, want invalid amount", err)
	}
	if _, err := uc.AdjustStock(context.Background(), p.ID, d("-100")); !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("over-draining = %v, want insufficient stock", err)
	}
}
