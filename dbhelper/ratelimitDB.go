package dbhelper

import (
	"github.com/wishlistapp/apiv1/models"
	"github.com/wishlistapp/apiv1/utils"
)

// SeedRateTracker starts (or restarts) tracking a client at one request.
// Re-seeding an existing token resets its count, matching a client whose
// tracker row was pruned while the cookie survived. Two concurrent
// re-seeds of the same token can still collide on the insert; the loser
// treats that as success, since the other request just seeded the same
// tracking state.
func SeedRateTracker(rateLimitId string) error {
	tx := DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()
	tracker := models.RateTracker{
		RateLimitID: rateLimitId,
		RequestsCount: 1,
		WindowTimestamp: utils.NowMillis(),
	}
	result := tx.Exec(
		"DELETE FROM rate_trackers WHERE rate_limit_id = ?",
		rateLimitId,
	)
	if result.Error != nil {
		return result.Error
	}
	createResult := tx.Create(&tracker)
	if createResult.Error != nil {
		if isDuplicateKeyError(createResult.Error) {
			return nil
		}
		return createResult.Error
	}
	return tx.Commit().Error
}

func GetRateTracker(rateLimitId string) (models.RateTracker, bool, error) {
	var tracker models.RateTracker
	result := DB.Raw(
		"SELECT * FROM rate_trackers WHERE rate_limit_id = ?",
		rateLimitId,
	).Scan(&tracker)
	if result.Error != nil {
		return tracker, false, result.Error
	}
	return tracker, result.RowsAffected > 0, nil
}

// IncrementRateTracker counts one more request against the client. Runs
// for allowed and rejected requests alike, so violations also decay.
func IncrementRateTracker(rateLimitId string) error {
	result := DB.Exec(
		"UPDATE rate_trackers SET requests_count = requests_count + 1 WHERE rate_limit_id = ?",
		rateLimitId,
	)
	return result.Error
}

// RecordAbusiveClient creates or bumps the abuse row for an IP that just
// exceeded the rate limit. An IP's first two violations can race on the
// insert; the loser reruns and lands on the update branch so every
// rejection still counts exactly once.
func RecordAbusiveClient(ipAddress string) error {
	err := recordAbusiveClientOnce(ipAddress)
	if err != nil && isDuplicateKeyError(err) {
		return recordAbusiveClientOnce(ipAddress)
	}
	return err
}

func recordAbusiveClientOnce(ipAddress string) error {
	tx := DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()
	now := utils.NowMillis()
	var abuser models.AbusiveClient
	result := tx.Raw(
		"SELECT * FROM abusive_clients WHERE ip_address = ?",
		ipAddress,
	).Scan(&abuser)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		abuser = models.AbusiveClient{
			IPAddress: ipAddress,
			FirstAbuseTimestamp: now,
			LatestAbuseTimestamp: now,
			RateLimitReachedCount: 1,
		}
		createResult := tx.Create(&abuser)
		if createResult.Error != nil {
			return createResult.Error
		}
	} else {
		updateResult := tx.Exec(
			"UPDATE abusive_clients SET latest_abuse_timestamp = ?, rate_limit_reached_count = rate_limit_reached_count + 1 WHERE ip_address = ?",
			now,
			ipAddress,
		)
		if updateResult.Error != nil {
			return updateResult.Error
		}
	}
	return tx.Commit().Error
}
