package service

import (
	"context"
	"testing"

	"anandam/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validProduct() *model.Product {
	return &model.Product{
		Name:     "Boho-Chic Linen Summer Dress",
		Price:    3200,
		Category: model.CategoryWomen,
		Stock:    25,
	}
}

func TestProductService_Create_AssignsIDAndTimestamp(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo, zerolog.Nop())

	repo.On("Create", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	p := validProduct()
	err := svc.Create(ctx, p)

	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestProductService_Create_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo, zerolog.Nop())

	noName := validProduct()
	noName.Name = ""
	assert.Error(t, svc.Create(ctx, noName))

	negative := validProduct()
	negative.Price = -1
	assert.Error(t, svc.Create(ctx, negative))

	repo.AssertNotCalled(t, "Create")
}

func TestProductService_GetByID_RequiresID(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(new(MockProductRepository), zerolog.Nop())

	_, err := svc.GetByID(ctx, "")

	assert.Error(t, err)
}

func TestProductService_List_PassesFilter(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo, zerolog.Nop())

	filter := model.ProductFilter{Search: "silk", Category: model.CategoryWomen, Limit: 10}
	repo.On("List", ctx, filter).Return([]model.Product{*validProduct()}, nil)

	products, err := svc.List(ctx, filter)

	require.NoError(t, err)
	assert.Len(t, products, 1)
	repo.AssertExpectations(t)
}

func TestProductService_AddReview_ValidatesRating(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo, zerolog.Nop())

	err := svc.AddReview(ctx, &model.Review{ProductID: "1", Rating: 6, Comment: "too good"})
	assert.Error(t, err)

	err = svc.AddReview(ctx, &model.Review{ProductID: "1", Rating: 0, Comment: "too bad"})
	assert.Error(t, err)

	repo.AssertNotCalled(t, "AddReview")
}

func TestProductService_AddReview_AssignsID(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo, zerolog.Nop())

	repo.On("AddReview", ctx, mock.AnythingOfType("*model.Review")).Return(nil)

	review := &model.Review{ProductID: "1", UserName: "Ananya", Rating: 5, Comment: "Lovely fabric"}
	err := svc.AddReview(ctx, review)

	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.False(t, review.CreatedAt.IsZero())
}
