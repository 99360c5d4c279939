package utils

// environment variables
const DBUSER = "DBUSER"
const DBPASS = "DBPASS"
const DBNAME = "DBNAME"
const PORT = "PORT"

// error messages
const GORM_ERR_CODE_DUPLICATE_KEY = "Error 1062"
const GORM_ERR_CODE_DEADLOCK = "Error 1213"
const GORM_ERR_CODE_LOCK_WAIT = "Error 1205"
const SQLITE_ERR_DUPLICATE_KEY = "UNIQUE constraint failed"
const GENERIC_SIGNUP_ERROR = "We had some trouble signing you up. Please try again!"
const EMAIL_TAKEN_SIGNUP_ERROR = "Someone might have signed up with that email before. Please try logging in!"
const DISPLAY_NAME_TAKEN_SIGNUP_ERROR = "Someone is already using that display name! Please choose a different one!"
const GENERIC_LOGIN_ERROR = "We had some trouble logging you in. Please try again!"
const GENERIC_SERVER_ERROR = "Something went wrong on our end. Please try again!"
const NOT_SIGNED_IN_ERROR = "Please sign in first!"
const RATE_LIMIT_MESSAGE = "Too many requests."

// cookies
const SESSION_COOKIE_NAME = "session_id"
const RATE_LIMIT_COOKIE_NAME = "rate_limit_id"

// session admission
const AUTH_SESSIONS_LIMIT = 3
const CREATE_SESSION_MAX_ATTEMPTS = 3
const SESSION_TOKEN_LENGTH = 36
const KEEP_SIGNED_IN_SESSION_HOURS = 24 * 7
const DEFAULT_SESSION_HOURS = 6

// rate limiting
const RATE_LIMIT_TOKEN_LENGTH = 32
const REQUESTS_PER_WINDOW = 100
const RATE_LIMIT_COOKIE_SECONDS = 60 * 60
const AUTH_BURSTS_PER_SECOND = 1

// maintenance windows
const REPLENISH_INTERVAL_SECONDS = 30
const REPLENISH_WINDOW_MILLIS = 30 * 1000
const STALE_TRACKER_AGE_MILLIS = 60 * 60 * 1000
const LIGHT_ABUSE_THRESHOLD = 3
const ABUSE_COOLDOWN_MILLIS = 60 * 60 * 1000
const ERROR_LOG_RETENTION_MILLIS = 2 * 24 * 60 * 60 * 1000
