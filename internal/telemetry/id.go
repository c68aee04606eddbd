package telemetry

import (
	"crypto/hmac"
	"crypto/sha256"

	"github.com/denisbrodbeck/machineid"
	"github.com/google/uuid"
)

// AnonymousID derives a stable per-machine id that does not reveal the
// machine id itself: the HMAC-SHA256 of the machine id keyed by app,
// truncated to a UUID.
func AnonymousID(app string) string {
	mid, err := machineid.ID()
	if err != nil || mid == "" {
		mid = "unknown"
	}
	return deriveID(app, mid)
}

func deriveID(key, machineID string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(machineID))
	// A 32 byte digest always yields a valid 16 byte slice.
	id, _ := uuid.FromBytes(mac.Sum(nil)[:16])
	return id.String()
}
