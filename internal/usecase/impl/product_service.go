package impl

import (
	"context"
	"log/slog"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for productService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	UserRepo    repository.UserRepository
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo: params.ProductRepo,
		userRepo:    params.UserRepo,
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProduct lists a new product owned by the provider.
func (srv *productService) CreateProduct(ctx context.Context, providerID uuid.UUID, input *usecase.CreateProductInput) (*entity.Product, error) {
	srv.log(ctx).Info("Creating product", slog.Any("providerID", providerID), slog.String("name", input.Name))

	user, err := srv.userRepo.FindByID(ctx, providerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user")
	}
	if user.ProviderProfile == nil {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "provider profile required")
	}

	product := &entity.Product{
		ProviderID:  providerID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
	}

	if err := srv.productRepo.CreateProduct(ctx, product); err != nil {
		srv.log(ctx).Error("Failed to create product", slog.Any("error", err), slog.Any("providerID", providerID))

		return nil, errors.Wrap(err, "failed to create product")
	}

	return product, nil
}

// GetProduct loads a single product.
func (srv *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// ListProducts lists shop products, newest first.
func (srv *productService) ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	limit, offset = clampPage(limit, offset)

	products, err := srv.productRepo.ListProducts(ctx, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// ListProviderProducts lists all products sold by a provider.
func (srv *productService) ListProviderProducts(ctx context.Context, providerID uuid.UUID) ([]*entity.Product, error) {
	products, err := srv.productRepo.FindProductsByProvider(ctx, providerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list provider products")
	}

	return products, nil
}

// UpdateProduct edits a product. Only the owning provider may edit.
func (srv *productService) UpdateProduct(ctx context.Context, providerID, productID uuid.UUID, input *usecase.UpdateProductInput) error {
	product, err := srv.loadOwnedProduct(ctx, providerID, productID)
	if err != nil {
		return err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.ImageURL = input.ImageURL

	if err := srv.productRepo.UpdateProduct(ctx, product); err != nil {
		srv.log(ctx).Error("Failed to update product", slog.Any("error", err), slog.Any("productID", productID))

		return errors.Wrap(err, "failed to update product")
	}

	return nil
}

// DeleteProduct removes a product. Only the owning provider may delete.
func (srv *productService) DeleteProduct(ctx context.Context, providerID, productID uuid.UUID) error {
	if _, err := srv.loadOwnedProduct(ctx, providerID, productID); err != nil {
		return err
	}

	if err := srv.productRepo.DeleteProduct(ctx, productID); err != nil {
		srv.log(ctx).Error("Failed to delete product", slog.Any("error", err), slog.Any("productID", productID))

		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

// loadOwnedProduct loads a product and verifies the caller owns it.
func (srv *productService) loadOwnedProduct(ctx context.Context, providerID, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	if product.ProviderID != providerID {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "product belongs to another provider")
	}

	return product, nil
}
