package model

import "time"

const (
	RoleMember = "member"
	RoleLeader = "leader"
	RoleAdmin  = "admin"
)

type Profile struct {
	ID                 string     `db:"id"`
	UserID             string     `db:"user_id"`
	FullName           string     `db:"full_name"`
	Role               string     `db:"role"`
	ShareWithLeaders   bool       `db:"share_with_leaders"`
	ReadthroughCount   int        `db:"cumulative_readthrough_count"`
	IsLocked           bool       `db:"is_locked"`
	FirstLogin         bool       `db:"first_login"`
	LastPasswordChange *time.Time `db:"last_password_change"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p *Profile) IsLeaderOrAdmin() bool {
	return p.Role == RoleLeader || p.Role == RoleAdmin
}

func ValidRole(role string) bool {
	switch role {
	case RoleMember, RoleLeader, RoleAdmin:
		return true
	}
	return false
}
