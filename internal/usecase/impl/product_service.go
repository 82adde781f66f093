package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "educycle/internal/delivery/context"
	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/domain/repository"
	"educycle/internal/domain/service"
	"educycle/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type productService struct {
	txManager   repository.TransactionManager
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	qrService   service.QRCodeService
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	UserRepo    repository.UserRepository
	QRService   service.QRCodeService
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		txManager:   params.TxManager,
		productRepo: params.ProductRepo,
		userRepo:    params.UserRepo,
		qrService:   params.QRService,
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns every product matching filter, newest first, with seller summaries joined in.
func (srv *productService) List(ctx context.Context, filter entity.ProductFilter) ([]*usecase.ProductView, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown category " + string(filter.Category))
	}

	products, err := srv.productRepo.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return srv.withSellers(ctx, products)
}

func (srv *productService) Search(ctx context.Context, query string, category entity.Category) ([]*usecase.ProductView, error) {
	return srv.List(ctx, entity.ProductFilter{Query: query, Category: category})
}

func (srv *productService) GetByID(ctx context.Context, id uuid.UUID) (*usecase.ProductView, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load product")
	}

	views, err := srv.withSellers(ctx, []*entity.Product{product})
	if err != nil {
		return nil, err
	}

	return views[0], nil
}

// Create stores the listing and appends it to the seller's listings in one transaction.
func (srv *productService) Create(ctx context.Context, sellerID uuid.UUID, input *usecase.CreateProductInput) (*entity.Product, error) {
	if err := validateNewProduct(input); err != nil {
		return nil, err
	}

	product := &entity.Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Condition:   input.Condition,
		Category:    input.Category,
		Images:      input.Images,
		SellerID:    sellerID,
		SavedBy:     []uuid.UUID{},
		Status:      entity.ProductStatusAvailable,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		productRepo := repoFactory.NewProductRepository()

		if _, err := userRepo.FindByID(ctx, sellerID); err != nil {
			return errors.Wrap(err, "failed to load seller")
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return errors.Wrap(err, "failed to create product")
		}

		return errors.Wrap(userRepo.AddListing(ctx, sellerID, product.ID), "failed to add listing")
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create product", slog.Any("sellerID", sellerID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Product created", slog.Any("productID", product.ID), slog.Any("sellerID", sellerID))

	return srv.productRepo.FindByID(ctx, product.ID)
}

// Update merges the non-nil fields after checking that requesterID is the seller.
func (srv *productService) Update(ctx context.Context, requesterID, id uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := srv.loadOwned(ctx, requesterID, id)
	if err != nil {
		return nil, err
	}

	if err := applyProductPatch(product, input); err != nil {
		return nil, err
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return srv.productRepo.FindByID(ctx, id)
}

func (srv *productService) UpdatePrice(ctx context.Context, requesterID, id uuid.UUID, price float64) (*entity.Product, error) {
	return srv.Update(ctx, requesterID, id, &usecase.UpdateProductInput{Price: &price})
}

// Delete removes the product and every user reference to it in one transaction.
func (srv *productService) Delete(ctx context.Context, requesterID, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		product, err := productRepo.FindByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to load product")
		}
		if !product.IsOwnedBy(requesterID) {
			return domainerrors.ErrProductOwnership.WrapMessage("delete rejected")
		}

		if err := productRepo.Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete product")
		}

		return errors.Wrap(repoFactory.NewUserRepository().PullProductReferences(ctx, id), "failed to pull product references")
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Product deleted", slog.Any("productID", id), slog.Any("sellerID", requesterID))

	return nil
}

// ToggleSave flips the bookmark on both Product.SavedBy and User.SavedItems in one transaction.
// The product side decides the new state so a half-applied older toggle converges.
func (srv *productService) ToggleSave(ctx context.Context, userID, id uuid.UUID) (*usecase.ToggleSaveOutput, error) {
	var output usecase.ToggleSaveOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		productRepo := repoFactory.NewProductRepository()

		if _, err := userRepo.FindByID(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to load user")
		}
		product, err := productRepo.FindByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to load product")
		}

		saved := !product.IsSavedBy(userID)
		if err := productRepo.SetSaver(ctx, id, userID, saved); err != nil {
			return errors.Wrap(err, "failed to update savedBy")
		}
		if err := userRepo.SetSavedItem(ctx, userID, id, saved); err != nil {
			return errors.Wrap(err, "failed to update savedItems")
		}

		updated, err := productRepo.FindByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to reload product")
		}

		output = usecase.ToggleSaveOutput{Product: updated, IsSaved: saved}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &output, nil
}

func (srv *productService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*usecase.ProductView, error) {
	return srv.List(ctx, entity.ProductFilter{SellerID: userID})
}

func (srv *productService) ListSaved(ctx context.Context, userID uuid.UUID) ([]*usecase.ProductView, error) {
	return srv.List(ctx, entity.ProductFilter{SavedBy: userID})
}

func (srv *productService) ShareQRCode(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if _, err := srv.productRepo.FindByID(ctx, id); err != nil {
		return nil, errors.Wrap(err, "failed to load product")
	}

	png, err := srv.qrService.GenerateProductQR(id)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to render QR code: " + err.Error())
	}

	return png, nil
}

func (srv *productService) loadOwned(ctx context.Context, requesterID, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load product")
	}
	if !product.IsOwnedBy(requesterID) {
		srv.log(ctx).Warn("Rejected product mutation by non-seller",
			slog.Any("productID", id),
			slog.Any("requesterID", requesterID),
		)

		return nil, domainerrors.ErrProductOwnership.WrapMessage("update rejected")
	}

	return product, nil
}

// withSellers joins seller summaries with one batched lookup. Missing sellers leave Seller nil.
func (srv *productService) withSellers(ctx context.Context, products []*entity.Product) ([]*usecase.ProductView, error) {
	sellerIDs := make([]uuid.UUID, 0, len(products))
	for _, product := range products {
		sellerIDs = entity.AddID(sellerIDs, product.SellerID)
	}

	sellers := make(map[uuid.UUID]*entity.User, len(sellerIDs))
	if len(sellerIDs) > 0 {
		users, err := srv.userRepo.FindByIDs(ctx, sellerIDs)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load sellers")
		}
		for _, user := range users {
			sellers[user.ID] = user
		}
	}

	views := make([]*usecase.ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, &usecase.ProductView{
			Product: product,
			Seller:  sellers[product.SellerID].Summary(),
		})
	}

	return views, nil
}

func validateNewProduct(input *usecase.CreateProductInput) error {
	var missing []string
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Description) == "" {
		missing = append(missing, "description")
	}
	if input.Condition == "" {
		missing = append(missing, "condition")
	}
	if input.Category == "" {
		missing = append(missing, "category")
	}
	if len(nonEmpty(input.Images)) == 0 {
		missing = append(missing, "images")
	}
	if len(missing) > 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("missing required fields: " + strings.Join(missing, ", "))
	}

	if input.Price < 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("price must not be negative")
	}
	if !input.Condition.Valid() {
		return domainerrors.ErrValidationFailed.WrapMessage("unknown condition " + string(input.Condition))
	}
	if !input.Category.Valid() {
		return domainerrors.ErrValidationFailed.WrapMessage("unknown category " + string(input.Category))
	}
	input.Images = nonEmpty(input.Images)

	return nil
}

func applyProductPatch(product *entity.Product, input *usecase.UpdateProductInput) error {
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return domainerrors.ErrValidationFailed.WrapMessage("name cannot be empty")
		}
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			return domainerrors.ErrValidationFailed.WrapMessage("description cannot be empty")
		}
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return domainerrors.ErrValidationFailed.WrapMessage("price must not be negative")
		}
		product.Price = *input.Price
	}
	if input.Condition != nil {
		if !input.Condition.Valid() {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown condition " + string(*input.Condition))
		}
		product.Condition = *input.Condition
	}
	if input.Category != nil {
		if !input.Category.Valid() {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown category " + string(*input.Category))
		}
		product.Category = *input.Category
	}
	if input.Images != nil {
		images := nonEmpty(input.Images)
		if len(images) == 0 {
			return domainerrors.ErrValidationFailed.WrapMessage("at least one image is required")
		}
		product.Images = images
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown status " + string(*input.Status))
		}
		product.Status = *input.Status
	}

	return nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, strings.TrimSpace(v))
		}
	}

	return out
}
