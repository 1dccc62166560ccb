// Package config loads service configuration with Viper.
//
// LoadConfig reads ./cmd/<service>/config.yml (or ./config.yml), loads a
// .env file through godotenv, then lets environment variables override any
// key. AUTH_JWT_SECRET sets auth.jwt.secret, TASKS_BROKER_URL sets
// tasks.broker_url.
//
//	var cfg Config
//	if err := config.LoadConfig("api", &cfg); err != nil {
//	    return err
//	}
package config
