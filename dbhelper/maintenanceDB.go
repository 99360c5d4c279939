package dbhelper

import (
	"github.com/wishlistapp/apiv1/utils"
)

// ReplenishRateTrackers decays every tracker row that has not been
// replenished for REPLENISH_WINDOW_MILLIS by half the request limit,
// floored at zero. Rows already at zero are left alone so they can age
// toward stale cleanup. One bulk statement, safe against live traffic:
// a row that no longer matches the predicate is simply skipped.
func ReplenishRateTrackers() (int64, error) {
	now := utils.NowMillis()
	decrement := utils.REQUESTS_PER_WINDOW / 2
	result := DB.Exec(
		"UPDATE rate_trackers SET requests_count = CASE WHEN requests_count > ? THEN requests_count - ? ELSE 0 END, window_timestamp = ? WHERE requests_count > 0 AND window_timestamp <= ?",
		decrement,
		decrement,
		now,
		now-utils.REPLENISH_WINDOW_MILLIS,
	)
	return result.RowsAffected, result.Error
}

// DeleteStaleRateTrackers removes rows that are fully decayed and at
// least an hour past their last window, reclaiming storage for clients
// that went quiet.
func DeleteStaleRateTrackers() (int64, error) {
	result := DB.Exec(
		"DELETE FROM rate_trackers WHERE requests_count = 0 AND window_timestamp <= ?",
		utils.NowMillis()-utils.STALE_TRACKER_AGE_MILLIS,
	)
	return result.RowsAffected, result.Error
}

// ForgiveLightAbusers removes abuse rows for clients at or below the
// light threshold whose last violation has cooled off. Heavy abusers are
// never auto-forgiven.
func ForgiveLightAbusers() (int64, error) {
	result := DB.Exec(
		"DELETE FROM abusive_clients WHERE rate_limit_reached_count <= ? AND latest_abuse_timestamp <= ?",
		utils.LIGHT_ABUSE_THRESHOLD,
		utils.NowMillis()-utils.ABUSE_COOLDOWN_MILLIS,
	)
	return result.RowsAffected, result.Error
}

// PruneUnexpectedErrors drops diagnostic rows past the retention window.
func PruneUnexpectedErrors() (int64, error) {
	result := DB.Exec(
		"DELETE FROM unexpected_errors WHERE error_timestamp <= ?",
		utils.NowMillis()-utils.ERROR_LOG_RETENTION_MILLIS,
	)
	return result.RowsAffected, result.Error
}
