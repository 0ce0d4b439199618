package policy

import (
	"testing"

	"coderr/internal/domain"

	"github.com/stretchr/testify/assert"
)

func customer(id int64) Caller {
	return Caller{UserID: id, ProfileType: domain.ProfileTypeCustomer, HasProfile: true}
}

func business(id int64) Caller {
	return Caller{UserID: id, ProfileType: domain.ProfileTypeBusiness, HasProfile: true}
}

func staff(id int64) Caller {
	return Caller{UserID: id, IsStaff: true}
}

func TestAllow(t *testing.T) {
	cases := []struct {
		name    string
		action  Action
		caller  Caller
		ownerID int64
		want    bool
	}{
		{"business creates offer", OfferCreate, business(1), 0, true},
		{"customer cannot create offer", OfferCreate, customer(1), 0, false},
		{"no profile cannot create offer", OfferCreate, Caller{UserID: 1}, 0, false},

		{"owner modifies offer", OfferModify, business(1), 1, true},
		{"other business cannot modify offer", OfferModify, business(2), 1, false},

		{"customer creates order", OrderCreate, customer(1), 0, true},
		{"business cannot create order", OrderCreate, business(1), 0, false},

		{"business owner updates own order", OrderUpdateStatus, business(5), 5, true},
		{"other business cannot update order", OrderUpdateStatus, business(6), 5, false},
		{"customer cannot update order status", OrderUpdateStatus, customer(5), 5, false},

		{"staff deletes order", OrderDelete, staff(1), 0, true},
		{"business cannot delete order", OrderDelete, business(1), 0, false},

		{"customer creates review", ReviewCreate, customer(1), 0, true},
		{"business cannot create review", ReviewCreate, business(1), 0, false},

		{"reviewer edits own review", ReviewModify, customer(3), 3, true},
		{"staff edits any review", ReviewModify, staff(9), 3, true},
		{"other customer cannot edit review", ReviewModify, customer(4), 3, false},

		{"owner edits own profile", ProfileEdit, customer(7), 7, true},
		{"other user cannot edit profile", ProfileEdit, customer(8), 7, false},

		{"unknown action denied", Action("nope"), staff(1), 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Allow(tc.action, tc.caller, tc.ownerID))
		})
	}
}
