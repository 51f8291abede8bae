package main

import (
	"storefront/internal/domain/entity"

	"gorm.io/gen"
)

func main() {
	models := []any{
		entity.BusinessEntity{},
		entity.Person{},
		entity.EmailAddress{},
		entity.Credential{},
		entity.Address{},
		entity.BusinessEntityAddress{},
		entity.StateProvince{},
		entity.AddressType{},
		entity.ProductCategory{},
		entity.ProductSubcategory{},
		entity.Product{},
		entity.ShoppingCartItem{},
	}

	g := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
		Mode:    gen.WithDefaultQuery | gen.WithQueryInterface,
	})

	g.ApplyBasic(models...)

	g.Execute()
}
