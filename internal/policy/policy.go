package policy

import "coderr/internal/domain"

// Caller is the authenticated identity an operation runs as. HasProfile is
// false when the user exists but never got a profile row; those callers fail
// every role-gated action.
type Caller struct {
	UserID      int64
	ProfileType domain.ProfileType
	HasProfile  bool
	IsStaff     bool
}

type Action string

const (
	OfferCreate       Action = "offer.create"
	OfferModify       Action = "offer.modify"
	OrderCreate       Action = "order.create"
	OrderUpdateStatus Action = "order.update_status"
	OrderDelete       Action = "order.delete"
	ReviewCreate      Action = "review.create"
	ReviewModify      Action = "review.modify"
	ProfileEdit       Action = "profile.edit"
)

type rule struct {
	profileType  domain.ProfileType // required profile type, empty for any
	staffOnly    bool
	ownerOnly    bool // caller must own the resource
	ownerOrStaff bool // caller must own the resource, staff bypasses
}

var rules = map[Action]rule{
	OfferCreate:       {profileType: domain.ProfileTypeBusiness},
	OfferModify:       {ownerOnly: true},
	OrderCreate:       {profileType: domain.ProfileTypeCustomer},
	OrderUpdateStatus: {profileType: domain.ProfileTypeBusiness, ownerOnly: true},
	OrderDelete:       {staffOnly: true},
	ReviewCreate:      {profileType: domain.ProfileTypeCustomer},
	ReviewModify:      {ownerOrStaff: true},
	ProfileEdit:       {ownerOnly: true},
}

// Allow decides whether caller may perform action on a resource owned by
// resourceOwnerID. Actions without a relationship rule ignore the owner id.
func Allow(action Action, c Caller, resourceOwnerID int64) bool {
	r, ok := rules[action]
	if !ok {
		return false
	}
	if r.staffOnly {
		return c.IsStaff
	}
	if r.ownerOrStaff {
		return c.IsStaff || c.UserID == resourceOwnerID
	}
	if r.profileType != "" {
		if !c.HasProfile || c.ProfileType != r.profileType {
			return false
		}
	}
	if r.ownerOnly && c.UserID != resourceOwnerID {
		return false
	}
	return true
}
