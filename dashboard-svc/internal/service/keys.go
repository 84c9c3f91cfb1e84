package service

import (
	"fmt"
	"strings"
)

// Cache keys are scoped by organization so tenants never share entries.

func OrgPrefix(orgID int) string {
	return fmt.Sprintf("q:org:%d:", orgID)
}

func RestaurantPrefix(orgID, restaurantID int) string {
	return fmt.Sprintf("q:org:%d:restaurant:%d:", orgID, restaurantID)
}

// Key joins parts under the organization prefix, e.g. Key(7, "restaurant", 3, "tables").
func Key(orgID int, parts ...any) string {
	return OrgPrefix(orgID) + joinParts(parts)
}

const AdminPrefix = "q:admin:"

func AdminKey(parts ...any) string {
	return AdminPrefix + joinParts(parts)
}

func joinParts(parts []any) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = fmt.Sprint(p)
	}
	return strings.Join(s, ":")
}

func ChatPrefix(orgID, chatID int) string {
	return fmt.Sprintf("q:org:%d:chat:%d:", orgID, chatID)
}

// UserScoped appends the reading user as the final key segment. Org and resource
// prefixes still match it, so invalidation reaches every user's copy.
func UserScoped(key string, userID int) string {
	return fmt.Sprintf("%s:u%d", key, userID)
}
