package config

import "time"

// Config is the full server configuration, read from the environment.
type Config struct {
	HTTP   HTTPConfig   `env-prefix:"HTTP_"`
	App    AppConfig    `env-prefix:"APP_"`
	AWS    AWSConfig    `env-prefix:"AWS_"`
	S3     S3Config     `env-prefix:"S3_"`
	Dynamo DynamoConfig `env-prefix:"DYNAMO_"`
	Auth   AuthConfig   `env-prefix:"AUTH_"`
}

type HTTPConfig struct {
	Addr string `env:"ADDR" env-default:":8080"`
}

type AppConfig struct {
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	Pretty   bool   `env:"PRETTY" env-default:"false"`
}

// AWSConfig carries the shared credentials for both backing stores.
type AWSConfig struct {
	Region    string `env:"DEFAULT_REGION" env-default:"us-west-2"`
	AccessKey string `env:"ACCESS_KEY_ID"`
	SecretKey string `env:"SECRET_ACCESS_KEY"`
}

type S3Config struct {
	Endpoint    string `env:"ENDPOINT"`
	Bucket      string `env:"BUCKET_NAME"`
	NotesFolder string `env:"NOTES_FOLDER" env-default:"notes/"`
}

type DynamoConfig struct {
	Endpoint string `env:"ENDPOINT"`
	Table    string `env:"TABLE" env-default:"NotesAppUsers"`
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"72h"`
}
