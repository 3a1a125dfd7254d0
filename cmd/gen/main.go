package main

import (
	"bazaar/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.CustomerProfileModel{},
		model.ProviderProfileModel{},
		model.AuthenticationModel{},
		model.RefreshTokenModel{},
		model.CategoryModel{},
		model.ServiceListingModel{},
		model.ProductModel{},
		model.BookingModel{},
		model.OrderModel{},
		model.OrderItemModel{},
		model.FinancialPlanModel{},
		model.UserDeviceModel{},
		model.NotificationModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
