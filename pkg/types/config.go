package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// File service
	// Backing store for uploaded file content: "postgres" keeps content
	// inline in the doc table, "s3" stores it as an object and keeps only
	// the key in the row.
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"postgres"`
	S3BucketName   string `envconfig:"S3_BUCKET_NAME"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"26214400"` // 25 MB

	// Base URL of the case service, e.g. http://localhost:8081. The file
	// service's existence check is the only call made against it.
	CaseServiceBaseURL   string `envconfig:"CASE_SERVICE_BASE_URL" default:"http://localhost:8081"`
	CaseClientTimeoutSec uint   `envconfig:"CASE_CLIENT_TIMEOUT_SEC" default:"5"`

	// Case service notification mail. Leaving SMTPHost empty downgrades
	// notifications to log lines.
	SMTPHost          string `envconfig:"SMTP_HOST"`
	SMTPPort          uint   `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername      string `envconfig:"SMTP_USERNAME"`
	SMTPPassword      string `envconfig:"SMTP_PASSWORD"`
	NotifyFromAddress string `envconfig:"NOTIFY_FROM_ADDRESS" default:"noreply@example.com"`
	NotifyToAddress   string `envconfig:"NOTIFY_TO_ADDRESS" default:"requester1@example.com"`
}
