package models

// All timestamps are integer milliseconds since epoch.

type AuthSession struct {
	SessionID string `gorm:"column:session_id;primaryKey;size:36"`
	UserID uint `gorm:"column:user_id;index"`
	CreatedOnTimestamp int64 `gorm:"column:created_on_timestamp"`
	ExpiryTimestamp int64 `gorm:"column:expiry_timestamp"`
}

type RateTracker struct {
	RateLimitID string `gorm:"column:rate_limit_id;primaryKey;size:32"`
	RequestsCount uint `gorm:"column:requests_count"`
	WindowTimestamp int64 `gorm:"column:window_timestamp"`
}

type AbusiveClient struct {
	IPAddress string `gorm:"column:ip_address;primaryKey;size:45"`
	FirstAbuseTimestamp int64 `gorm:"column:first_abuse_timestamp"`
	LatestAbuseTimestamp int64 `gorm:"column:latest_abuse_timestamp"`
	RateLimitReachedCount uint `gorm:"column:rate_limit_reached_count"`
}

type UnexpectedError struct {
	ErrorID uint `gorm:"column:error_id;primaryKey;autoIncrement"`
	RequestMethod string `gorm:"column:request_method"`
	RequestPath string `gorm:"column:request_path"`
	ErrorTimestamp int64 `gorm:"column:error_timestamp"`
	ErrorMessage string `gorm:"column:error_message"`
	StackTrace string `gorm:"column:stack_trace"`
}
