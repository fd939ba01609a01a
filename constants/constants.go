package constants

// Order and delivery status
const STATUS_COMPLETED = "Completed"
const STATUS_PENDING = "Pending"
const STATUS_CANCELLED = "Cancelled"

// Report windows and limits
const ACTIVE_CUSTOMER_WINDOW_DAYS = 30
const DAILY_REVENUE_WINDOW_DAYS = 30
const TOP_SPENDERS_LIMIT = 10
const TOP_RESTAURANTS_LIMIT = 5
const POPULAR_ITEMS_LIMIT = 10
const FASTEST_RIDERS_LIMIT = 10
const FASTEST_RIDERS_MIN_DELIVERIES = 10
const FREQUENT_CUSTOMER_MIN_ORDERS = 5
const TOP_RIDERS_LAST_MONTH_LIMIT = 10

// database/sql driver name registered by lib/pq
const POSTGRES_DRIVER = "postgres"

// Output formats
const OUTPUT_FORMAT_TEXT = "text"
const OUTPUT_FORMAT_JSON = "json"

// Date layout used for reference dates and rendered dates
const DATE_LAYOUT = "2006-01-02"

// Error responses
const SEED_FILE_REQUIRED = "seed file is required"
const UNKNOWN_REPORT = "unknown report"
const UNKNOWN_OUTPUT_FORMAT = "unknown output format"
const INVALID_REFERENCE_DATE = "invalid reference date"
const DATABASE_NOT_CONFIGURED = "postgres is not configured"
const NOTHING_TO_SEED = "nothing to seed"
