package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Key namespace: cache:<entity>:<id-or-hash>.

func projectKey(id uuid.UUID) string {
	return "cache:project:" + id.String()
}

func projectListKey(filterHash string) string {
	return "cache:projects:list:" + filterHash
}

func popularProjectsKey(limit int) string {
	return fmt.Sprintf("cache:projects:popular:%d", limit)
}

func recommendedProjectsKey(userID uuid.UUID, limit int) string {
	return fmt.Sprintf("cache:projects:recommended:%s:%d", userID, limit)
}

// FilterHash derives a stable short hash from an arbitrary filter object.
// encoding/json sorts map keys, so equivalent filters share a key.
func FilterHash(filter any) string {
	payload, err := json.Marshal(filter)
	if err != nil {
		payload = []byte(fmt.Sprintf("%v", filter))
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])[:16]
}
