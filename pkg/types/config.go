package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Supabase project hosting auth and file storage
	SupabaseProjectID  string `envconfig:"SUPABASE_PROJECT_ID"`
	SupabaseServiceKey string `envconfig:"SUPABASE_SERVICE_KEY"`
	StorageBucketName  string `envconfig:"STORAGE_BUCKET_NAME" default:"property-tax-bills"`

	// Admin access. Bearer tokens are Supabase JWTs verified against the
	// project JWKS; the email claim must appear in AdminEmails. The session
	// cookie path checks a bcrypt hash, never a plaintext shared secret.
	AdminEmails       string `envconfig:"ADMIN_EMAILS"`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`

	// Session cookie
	CookieName       string `envconfig:"SESSION_COOKIE_NAME" default:"ticketless_admin_session"`
	SessionMaxAgeSec int    `envconfig:"SESSION_MAX_AGE_SEC" default:"43200"` // 12 hours

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes

	// Outcome emails
	MailerAPIKey  string `envconfig:"RESEND_API_KEY"`
	MailerBaseURL string `envconfig:"MAILER_BASE_URL" default:"https://api.resend.com"`
	MailFrom      string `envconfig:"MAIL_FROM" default:"Ticketless America <noreply@ticketlessamerica.com>"`

	MaxUploadMB int64 `envconfig:"MAX_UPLOAD_MB" default:"10"`
}
