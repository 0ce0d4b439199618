package offer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"coderr/internal/database"
	"coderr/internal/domain"
	"coderr/internal/pkg/apierror"
	"coderr/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type offerFixture struct {
	svc *Service
	db  *gorm.DB
}

func setupOfferFixture(t *testing.T) *offerFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:offer_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	offers := repository.NewOfferRepository(db)
	profiles := repository.NewProfileRepository(db)
	return &offerFixture{svc: NewService(offers, profiles), db: db}
}

func (f *offerFixture) createUser(t *testing.T, username string, typ domain.ProfileType) *domain.User {
	t.Helper()
	u := &domain.User{Username: username, Email: username + "@mail.dev", PasswordHash: "x"}
	require.NoError(t, f.db.Create(u).Error)
	require.NoError(t, f.db.Create(&domain.Profile{UserID: u.ID, Type: typ}).Error)
	return u
}

func detailReq(tier string, revisions, days int, price float64) DetailRequest {
	title := tier + " package"
	return DetailRequest{
		Title:              &title,
		Revisions:          &revisions,
		DeliveryTimeInDays: &days,
		Price:              &price,
		Features:           []string{"Feature A"},
		OfferType:          tier,
	}
}

func validCreateReq(title string) CreateOfferRequest {
	return CreateOfferRequest{
		Title: title,
		Details: []DetailRequest{
			detailReq("basic", 2, 5, 100),
			detailReq("standard", 5, 7, 200),
			detailReq("premium", -1, 10, 500),
		},
	}
}

func TestCreateOfferRequiresBusinessProfile(t *testing.T) {
	f := setupOfferFixture(t)
	customer := f.createUser(t, "alice", domain.ProfileTypeCustomer)

	_, err := f.svc.Create(context.Background(), customer.ID, validCreateReq("Website"))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateOffer(t *testing.T) {
	f := setupOfferFixture(t)
	biz := f.createUser(t, "webworks", domain.ProfileTypeBusiness)

	resp, err := f.svc.Create(context.Background(), biz.ID, validCreateReq("Website"))
	require.NoError(t, err)
	assert.Equal(t, "Website", resp.Title)
	assert.Len(t, resp.Details, 3)
	assert.Equal(t, 100.0, resp.MinPrice)
	assert.Equal(t, 5, resp.MinDeliveryTime)
}

func TestCreateOfferRejectsWrongDetailCount(t *testing.T) {
	f := setupOfferFixture(t)
	biz := f.createUser(t, "webworks", domain.ProfileTypeBusiness)

	req := validCreateReq("Website")
	req.Details = req.Details[:2]
	_, err := f.svc.Create(context.Background(), biz.ID, req)

	var ve apierror.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve, "details")
}

func TestCreateOfferRejectsDuplicateTier(t *testing.T) {
	f := setupOfferFixture(t)
	biz := f.createUser(t, "webworks", domain.ProfileTypeBusiness)

	req := validCreateReq("Website")
	req.Details[2].OfferType = "basic"
	_, err := f.svc.Create(context.Background(), biz.ID, req)

	var ve apierror.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve, "details")
}

func TestCreateOfferRejectsInvalidDetailFields(t *testing.T) {
	f := setupOfferFixture(t)
	biz := f.createUser(t, "webworks", domain.ProfileTypeBusiness)

	req := validCreateReq("Website")
	badPrice := 0.0
	badDays := 0
	req.Details[0].Price = &badPrice
	req.Details[1].DeliveryTimeInDays = &badDays
	req.Details[2].Features = nil

	_, err := f.svc.Create(context.Background(), biz.ID, req)
	var ve apierror.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve, "details.basic.price")
	assert.Contains(t, ve, "details.standard.delivery_time_in_days")
	assert.Contains(t, ve, "details.premium.features")
}

func TestListOffersFiltersAndPaginates(t *testing.T) {
	f := setupOfferFixture(t)
	ctx := context.Background()
	biz := f.createUser(t, "webworks", domain.ProfileTypeBusiness)
	other := f.createUser(t, "pixelforge", domain.ProfileTypeBusiness)

	cheap := validCreateReq("Cheap Logo")
	_, err := f.svc.Create(ctx, biz.ID, cheap)
	require.NoError(t, err)

	pricey := CreateOfferRequest{
		Title: "Full Shop",
		Details: []DetailRequest{
			detailReq("basic", 1, 14, 900),
			detailReq("standard", 2, 21, 1500),
			detailReq("premium", -1, 30, 3000),
		},
	}
	_, err = f.svc.Create(ctx, other.ID, pricey)
	require.NoError(t, err)

	// creator filter
	results, total, err := f.svc.List(ctx, ListQuery{CreatorID: fmt.Sprint(biz.ID)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, "Cheap Logo", results[0].Title)

	// min_price keeps only offers whose cheapest package reaches the floor
	results, total, err = f.svc.List(ctx, ListQuery{MinPrice: "500"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, "Full Shop", results[0].Title)

	// max_delivery_time keeps offers with a package fast enough
	results, total, err = f.svc.List(ctx, ListQuery{MaxDeliveryTime: "7"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, "Cheap Logo", results[0].Title)

	// ordering by cheapest package ascending
	results, _, err = f.svc.List(ctx, ListQuery{Ordering: "min_price"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Cheap Logo", results[0].Title)

	// pagination: page 2 with page_size 1 returns the second offer
	results, total, err = f.svc.List(ctx, ListQuery{Page: "2", PageSize: "1", Ordering: "min_price"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, results, 1)
	assert.Equal(t, "Full Shop", results[0].Title)
}

func TestListOffersRejectsMalformedParams(t *testing.T) {
	f := setupOfferFixture(t)

	_, _, err := f.svc.List(context.Background(), ListQuery{CreatorID: "abc", Page: "0"})
	var ve apierror.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve, "creator_id")
	assert.Contains(t, ve, "page")
}

func TestUpdateOfferReconcilesDetailsByTier(t *testing.T) {
	f := setupOfferFixture(t)
	ctx := context.Background()
	biz := f.createUser(t, "webworks", domain.ProfileTypeBusiness)

	created, err := f.svc.Create(ctx, biz.ID, validCreateReq("Website"))
	require.NoError(t, err)

	newPrice := 50.0
	updated, err := f.svc.Update(ctx, biz.ID, created.ID, UpdateOfferRequest{
		Details: []DetailRequest{{OfferType: "basic", Price: &newPrice}},
	})
	require.NoError(t, err)

	assert.Len(t, updated.Details, 3)
	assert.Equal(t, 50.0, updated.MinPrice)
	for _, d := range updated.Details {
		if d.OfferType == domain.OfferTypeBasic {
			assert.Equal(t, 50.0, d.Price)
			assert.Equal(t, "basic package", d.Title) // untouched fields survive
		}
	}
}

func TestUpdateOfferForbiddenForNonOwner(t *testing.T) {
	f := setupOfferFixture(t)
	ctx := context.Background()
	biz := f.createUser(t, "webworks", domain.ProfileTypeBusiness)
	other := f.createUser(t, "pixelforge", domain.ProfileTypeBusiness)

	created, err := f.svc.Create(ctx, biz.ID, validCreateReq("Website"))
	require.NoError(t, err)

	title := "Hijacked"
	_, err = f.svc.Update(ctx, other.ID, created.ID, UpdateOfferRequest{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteOffer(t *testing.T) {
	f := setupOfferFixture(t)
	ctx := context.Background()
	biz := f.createUser(t, "webworks", domain.ProfileTypeBusiness)

	created, err := f.svc.Create(ctx, biz.ID, validCreateReq("Website"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, biz.ID, created.ID))

	_, err = f.svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// details are gone with the offer
	var count int64
	require.NoError(t, f.db.Model(&domain.OfferDetail{}).Where("offer_id = ?", created.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestGetDetail(t *testing.T) {
	f := setupOfferFixture(t)
	ctx := context.Background()
	biz := f.createUser(t, "webworks", domain.ProfileTypeBusiness)

	created, err := f.svc.Create(ctx, biz.ID, validCreateReq("Website"))
	require.NoError(t, err)

	detail, err := f.svc.GetDetail(ctx, created.Details[0].ID)
	require.NoError(t, err)
	assert.Equal(t, created.Details[0].ID, detail.ID)
	assert.Equal(t, fmt.Sprintf("/offerdetails/%d", detail.ID), detail.URL)

	_, err = f.svc.GetDetail(ctx, 99999)
	assert.ErrorIs(t, err, ErrDetailNotFound)
}
