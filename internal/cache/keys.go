package cache

import "fmt"

func FingerprintSetKey() string {
	return "ghpulse:fingerprints:seen"
}

func RateLimitKey(client string) string {
	return fmt.Sprintf("ghpulse:ratelimit:%s", client)
}
