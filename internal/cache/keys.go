package cache

import "fmt"

// Key builders. Every read endpoint derives its key from the query shape so
// the same query always lands on the same entry.

const AllDatesKey = "all-dates"

func SingleCheckupKey(id uint) string {
	return fmt.Sprintf("single-checkup:%d", id)
}

// CheckupListKey scopes listings by owner; staff listings use owner "all".
func CheckupListKey(owner string, skip, take int, order string) string {
	return fmt.Sprintf("checkups:owner=%s:page=%d:limit=%d:order=%s", owner, skip, take, order)
}

func SingleUserKey(role string, id uint) string {
	return fmt.Sprintf("single-%s:%d", roleTag(role), id)
}

func UserListKey(role string, skip, take int, order string) string {
	return fmt.Sprintf("%ss:page=%d:limit=%d:order=%s", roleTag(role), skip, take, order)
}

func roleTag(role string) string {
	switch role {
	case "ADMIN":
		return "admin"
	case "MODERATOR":
		return "moderator"
	default:
		return "patient"
	}
}
