package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	AvatarDataPrefix = "data:image/"
	MaxAvatarBytes   = 500 * 1024
)

// GravatarURL builds the identicon fallback for users without an uploaded avatar.
func GravatarURL(email string, size int) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=identicon&s=%d", hex.EncodeToString(sum[:]), size)
}

// AvatarPayloadSize estimates the decoded byte size of a base64 data URL.
func AvatarPayloadSize(dataURL string) int {
	idx := strings.Index(dataURL, ",")
	if idx < 0 {
		return 0
	}
	payload := dataURL[idx+1:]
	padding := 0
	if strings.HasSuffix(payload, "==") {
		padding = 2
	} else if strings.HasSuffix(payload, "=") {
		padding = 1
	}
	return len(payload)*3/4 - padding
}

// ValidAvatar checks the data URL prefix and the size limit.
func ValidAvatar(dataURL string) bool {
	return strings.HasPrefix(dataURL, AvatarDataPrefix) &&
		strings.Contains(dataURL, ";base64,") &&
		AvatarPayloadSize(dataURL) <= MaxAvatarBytes
}
