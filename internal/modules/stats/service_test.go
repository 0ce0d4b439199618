package stats

import (
	"context"
	"fmt"
	"testing"

	"coderr/internal/database"
	"coderr/internal/domain"
	"coderr/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupStatsFixture(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:stats_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := NewService(
		repository.NewReviewRepository(db),
		repository.NewProfileRepository(db),
		repository.NewOfferRepository(db),
	)
	return svc, db
}

func TestBaseInfoEmptyPlatform(t *testing.T) {
	svc, _ := setupStatsFixture(t)

	info, err := svc.BaseInfo(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 0, info.ReviewCount)
	assert.Equal(t, 0.0, info.AverageRating)
	assert.EqualValues(t, 0, info.BusinessProfileCount)
	assert.EqualValues(t, 0, info.OfferCount)
}

func TestBaseInfoAggregates(t *testing.T) {
	svc, db := setupStatsFixture(t)

	for i, typ := range []domain.ProfileType{domain.ProfileTypeBusiness, domain.ProfileTypeBusiness, domain.ProfileTypeCustomer} {
		u := &domain.User{Username: fmt.Sprintf("user%d", i), Email: fmt.Sprintf("user%d@mail.dev", i), PasswordHash: "x"}
		require.NoError(t, db.Create(u).Error)
		require.NoError(t, db.Create(&domain.Profile{UserID: u.ID, Type: typ}).Error)
	}

	require.NoError(t, db.Create(&domain.Offer{UserID: 1, Title: "Website"}).Error)

	// ratings 4 and 3 average to 3.5
	require.NoError(t, db.Create(&domain.Review{BusinessUserID: 1, ReviewerID: 3, Rating: 4}).Error)
	require.NoError(t, db.Create(&domain.Review{BusinessUserID: 2, ReviewerID: 3, Rating: 3}).Error)

	info, err := svc.BaseInfo(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, info.ReviewCount)
	assert.Equal(t, 3.5, info.AverageRating)
	assert.EqualValues(t, 2, info.BusinessProfileCount)
	assert.EqualValues(t, 1, info.OfferCount)
}

func TestBaseInfoRoundsAverageToOneDecimal(t *testing.T) {
	svc, db := setupStatsFixture(t)

	// 5, 4, 4 -> 4.333... -> 4.3
	for i, rating := range []int{5, 4, 4} {
		require.NoError(t, db.Create(&domain.Review{BusinessUserID: 1, ReviewerID: int64(i + 10), Rating: rating}).Error)
	}

	info, err := svc.BaseInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4.3, info.AverageRating)
}
