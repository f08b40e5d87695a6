package config

// EnvPrefix is intentionally empty: every variable names its full
// SOLECARE_-prefixed key in its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "SOLECARE_DB_DSN"
	EnvDBHost = "SOLECARE_DB_HOST"
	EnvDBUser = "SOLECARE_DB_USER"
	EnvDBName = "SOLECARE_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
