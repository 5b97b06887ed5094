package cmd

type Config struct {
	HTTPPort       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	RedisAddr      string
	CarrierBaseURL string
	// ShippingFeeCents is the flat per-seller shipping fee charged at
	// decomposition, in minor currency units.
	ShippingFeeCents int64
}
