package review

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

type reviewFixture struct {
	svc *Service
	db  *gorm.DB
}

func setupReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:review_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	reviews := repository.NewReviewRepository(db)
	orders := repository.NewOrderRepository(db)
	profiles := repository.NewProfileRepository(db)
	return &reviewFixture{svc: NewService(reviews, orders, profiles), db: db}
}

func (f *reviewFixture) createUser(t *testing.T, username string, typ domain.ProfileType) *domain.User {
	t.Helper()
	u := &domain.User{Username: username, Email: username + "@mail.dev", PasswordHash: "x"}
	require.NoError(t, f.db.Create(u).Error)
	require.NoError(t, f.db.Create(&domain.Profile{UserID: u.ID, Type: typ}).Error)
	return u
}

func (f *reviewFixture) createOrder(t *testing.T, customerID, businessID int64, status domain.OrderStatus) {
	t.Helper()
	o := &domain.Order{
		CustomerUserID:     customerID,
		BusinessUserID:     businessID,
		Title:              "Website Design",
		Revisions:          2,
		DeliveryTimeInDays: 5,
		Price:              100,
		OfferType:          domain.OfferTypeBasic,
		Status:             status,
	}
	require.NoError(t, f.db.Create(o).Error)
}

func TestCreateReviewRequiresCompletedOrder(t *testing.T) {
	f := setupReviewFixture(t)
	ctx := context.Background()
	biz := f.createUser(t, "webworks", domain.ProfileTypeBusiness)
	customer := f.createUser(t, "alice", domain.ProfileTypeCustomer)

	req := CreateReviewRequest{BusinessUser: biz.ID, Rating: 5, Description: "Great work"}

	// no order at all
	_, err := f.svc.Create(ctx, customer.ID, req)
	assert.ErrorIs(t, err, ErrReviewNotAllowed)

	// an order exists but was never completed
	f.createOrder(t, customer.ID, biz.ID, domain.OrderInProgress)
	_, err = f.svc.Create(ctx, customer.ID, req)
	assert.ErrorIs(t, err, ErrReviewNotAllowed)

	f.createOrder(t, customer.ID, biz.ID, domain.OrderCompleted)
	rv, err := f.svc.Create(ctx, customer.ID, req)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, rv.ReviewerID)
	assert.Equal(t, biz.ID, rv.BusinessUserID)
	assert.Equal(t, 5, rv.Rating)
}

func TestCreateReviewForbiddenForBusiness(t *testing.T) {
	f := setupReviewFixture(t)
	biz := f.createUser(t, "webworks", domain.ProfileTypeBusiness)
	other := f.createUser(t, "pixelforge", domain.ProfileTypeBusiness)

	_, err := f.svc.Create(context.Background(), other.ID, CreateReviewRequest{BusinessUser: biz.ID, Rating: 5, Description: "x"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateReviewRequiresBusinessUser(t *testing.T) {
	f := setupReviewFixture(t)
	customer := f.createUser(t, "alice", domain.ProfileTypeCustomer)

	_, err := f.svc.Create(context.Background(), customer.ID, CreateReviewRequest{Rating: 5, Description: "x"})
	assert.ErrorIs(t, err, ErrNoBusinessUser)
}

func TestCreateReviewRejectsImpersonation(t *testing.T) {
	f := setupReviewFixture(t)
	ctx := context.Background()
	biz := f.createUser(t, "webworks", domain.ProfileTypeBusiness)
	customer := f.createUser(t, "alice", domain.ProfileTypeCustomer)
	f.createOrder(t, customer.ID, biz.ID, domain.OrderCompleted)

	someoneElse := customer.ID + 100
	_, err := f.svc.Create(ctx, customer.ID, CreateReviewRequest{
		BusinessUser: biz.ID,
		Reviewer:     &someoneElse,
		Rating:       5,
		Description:  "x",
	})
	var ve apierror.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve, "reviewer")
}

func TestCreateReviewValidatesRating(t *testing.T) {
	f := setupReviewFixture(t)
	ctx := context.Background()
	biz := f.createUser(t, "webworks", domain.ProfileTypeBusiness)
	customer := f.createUser(t, "alice", domain.ProfileTypeCustomer)
	f.createOrder(t, customer.ID, biz.ID, domain.OrderCompleted)

	_, err := f.svc.Create(ctx, customer.ID, CreateReviewRequest{BusinessUser: biz.ID, Rating: 6, Description: "x"})
	var ve apierror.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve, "rating")
}

func TestCreateReviewOncePerBusiness(t *testing.T) {
	f := setupReviewFixture(t)
	ctx := context.Background()
	biz := f.createUser(t, "webworks", domain.ProfileTypeBusiness)
	customer := f.createUser(t, "alice", domain.ProfileTypeCustomer)
	f.createOrder(t, customer.ID, biz.ID, domain.OrderCompleted)

	_, err := f.svc.Create(ctx, customer.ID, CreateReviewRequest{BusinessUser: biz.ID, Rating: 5, Description: "First"})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, customer.ID, CreateReviewRequest{BusinessUser: biz.ID, Rating: 1, Description: "Second"})
	var ve apierror.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve, "detail")
}

func TestListReviewsFiltersAndOrders(t *testing.T) {
	f := setupReviewFixture(t)
	ctx := context.Background()
	biz := f.createUser(t, "webworks", domain.ProfileTypeBusiness)
	other := f.createUser(t, "pixelforge", domain.ProfileTypeBusiness)
	alice := f.createUser(t, "alice", domain.ProfileTypeCustomer)
	bob := f.createUser(t, "bob", domain.ProfileTypeCustomer)

	f.createOrder(t, alice.ID, biz.ID, domain.OrderCompleted)
	f.createOrder(t, bob.ID, biz.ID, domain.OrderCompleted)
	f.createOrder(t, alice.ID, other.ID, domain.OrderCompleted)

	_, err := f.svc.Create(ctx, alice.ID, CreateReviewRequest{BusinessUser: biz.ID, Rating: 5, Description: "a"})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, bob.ID, CreateReviewRequest{BusinessUser: biz.ID, Rating: 2, Description: "b"})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, alice.ID, CreateReviewRequest{BusinessUser: other.ID, Rating: 4, Description: "c"})
	require.NoError(t, err)

	all, err := f.svc.List(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	forBiz, err := f.svc.List(ctx, ListQuery{BusinessUserID: fmt.Sprint(biz.ID)})
	require.NoError(t, err)
	assert.Len(t, forBiz, 2)

	byAlice, err := f.svc.List(ctx, ListQuery{ReviewerID: fmt.Sprint(alice.ID)})
	require.NoError(t, err)
	assert.Len(t, byAlice, 2)

	byRating, err := f.svc.List(ctx, ListQuery{Ordering: "-rating"})
	require.NoError(t, err)
	require.Len(t, byRating, 3)
	assert.Equal(t, 5, byRating[0].Rating)

	_, err = f.svc.List(ctx, ListQuery{BusinessUserID: "abc"})
	var ve apierror.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve, "business_user_id")
}

func TestUpdateReview(t *testing.T) {
	f := setupReviewFixture(t)
	ctx := context.Background()
	biz := f.createUser(t, "webworks", domain.ProfileTypeBusiness)
	alice := f.createUser(t, "alice", domain.ProfileTypeCustomer)
	bob := f.createUser(t, "bob", domain.ProfileTypeCustomer)
	f.createOrder(t, alice.ID, biz.ID, domain.OrderCompleted)

	rv, err := f.svc.Create(ctx, alice.ID, CreateReviewRequest{BusinessUser: biz.ID, Rating: 5, Description: "Great"})
	require.NoError(t, err)

	newRating := 3
	updated, err := f.svc.Update(ctx, alice.ID, false, rv.ID, UpdateReviewRequest{Rating: &newRating})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Rating)
	assert.Equal(t, "Great", updated.Description)

	// only the reviewer or staff may touch it
	_, err = f.svc.Update(ctx, bob.ID, false, rv.ID, UpdateReviewRequest{Rating: &newRating})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Update(ctx, 999, true, rv.ID, UpdateReviewRequest{Rating: &newRating})
	require.NoError(t, err)

	badRating := 9
	_, err = f.svc.Update(ctx, alice.ID, false, rv.ID, UpdateReviewRequest{Rating: &badRating})
	var ve apierror.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve, "rating")
}

func TestDeleteReview(t *testing.T) {
	f := setupReviewFixture(t)
	ctx := context.Background()
	biz := f.createUser(t, "webworks", domain.ProfileTypeBusiness)
	alice := f.createUser(t, "alice", domain.ProfileTypeCustomer)
	bob := f.createUser(t, "bob", domain.ProfileTypeCustomer)
	f.createOrder(t, alice.ID, biz.ID, domain.OrderCompleted)

	rv, err := f.svc.Create(ctx, alice.ID, CreateReviewRequest{BusinessUser: biz.ID, Rating: 5, Description: "Great"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, bob.ID, false, rv.ID), ErrForbidden)
	require.NoError(t, f.svc.Delete(ctx, alice.ID, false, rv.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, alice.ID, false, rv.ID), ErrNotFound)
}
