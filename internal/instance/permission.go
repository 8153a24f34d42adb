package instance

// Permission is the access level of an instance, derived from the tags
// of its identifier suffix.
type Permission int

// Permission values. Unknown is the zero value so that an unset or
// unrecognized permission never reads as Public.
const (
	Unknown Permission = iota
	Public
	PublicWithIdentifier
	FriendsPlus
	Friends
	InvitePlus
	Invite
	Group
	GroupPlus
	GroupPublic
)

var permissionNames = [...]string{
	Unknown:              "unknown",
	Public:               "public",
	PublicWithIdentifier: "public_named",
	FriendsPlus:          "friends_plus",
	Friends:              "friends",
	InvitePlus:           "invite_plus",
	Invite:               "invite",
	Group:                "group",
	GroupPlus:            "group_plus",
	GroupPublic:          "group_public",
}

// String returns a stable lower-case label for the permission.
func (p Permission) String() string {
	if p < 0 || int(p) >= len(permissionNames) {
		return permissionNames[Unknown]
	}
	return permissionNames[p]
}

// OpenToAnyone reports whether the permission must be treated as public
// when filtering. Unknown counts as public: an unrecognized level may be a
// new public variant and must not slip through an ignore-public filter.
func (p Permission) OpenToAnyone() bool {
	switch p {
	case Public, PublicWithIdentifier, Unknown:
		return true
	default:
		return false
	}
}
