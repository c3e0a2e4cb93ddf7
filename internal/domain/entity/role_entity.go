package entity

// UserType is the authorization role of an account.
// Admins may modify any event and manage blog content.
type UserType string

const (
	UserTypeAdmin   UserType = "admin"
	UserTypeRegular UserType = "regular"
)

// ParseUserType maps a stored value onto a known role, defaulting to regular.
func ParseUserType(s string) UserType {
	if UserType(s) == UserTypeAdmin {
		return UserTypeAdmin
	}
	return UserTypeRegular
}
