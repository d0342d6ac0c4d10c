package model

// Member is the admin console's view of one account: the profile joined
// with the login email and check-in aggregates.
type Member struct {
	Profile
	Email        string  `db:"email"`
	CheckinCount int     `db:"checkin_count"`
	LastCheckin  *string `db:"last_checkin"`

	// CurrentStreak is filled in by the service, not the query.
	CurrentStreak int `db:"-"`
}
