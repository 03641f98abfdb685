package helper

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

const TenantUsernamePrefix = "Tenant_"

var reUsernameIllegal = regexp.MustCompile(`[^A-Za-z0-9_.@+\-]+`)

// NormalizeUsername strips diacritics and characters outside [A-Za-z0-9_.@+-].
func NormalizeUsername(s string) string {
	s = strings.TrimSpace(s)
	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		buf = append(buf, r)
	}
	s = strings.ReplaceAll(string(buf), " ", "_")
	return reUsernameIllegal.ReplaceAllString(s, "")
}

// TenantUsername normalizes raw and adds the tenant prefix when missing.
// "ana" → "Tenant_ana", "tenant_ana" → "tenant_ana".
func TenantUsername(raw string) string {
	u := NormalizeUsername(raw)
	if u == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(u), strings.ToLower(TenantUsernamePrefix)) {
		return u
	}
	return TenantUsernamePrefix + u
}

// UsernameTakenCI checks users.user_name case-insensitively.
func UsernameTakenCI(ctx context.Context, db *gorm.DB, username string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Table("users").
		Where("LOWER(user_name) = ?", strings.ToLower(strings.TrimSpace(username))).
		Count(&n).Error
	return n > 0, err
}
