package cmd

// Config carries every external setting the service needs. Values come from
// environment variables, loaded from .env in development.
type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	OrderStatusPolicy string
}
