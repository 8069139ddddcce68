package locator

// Config defines the configuration structure for the locator API server
type Config struct {
	Http struct {
		ServerName string `mapstructure:"server_name"`
		Listen     string `mapstructure:"listen"`
		Debug      bool   `mapstructure:"debug"`
	} `mapstructure:"http"`
	Db struct {
		Driver string `mapstructure:"driver"`
		Debug  bool   `mapstructure:"debug"`
		Mysql  struct {
			User     string `mapstructure:"user"`
			Password string `mapstructure:"password"`
			Host     string `mapstructure:"host"`
			Database string `mapstructure:"database"`
		} `mapstructure:"mysql"`
		Postgres struct {
			Dsn string `mapstructure:"dsn"`
		} `mapstructure:"postgres"`
	} `mapstructure:"db"`
	Auth struct {
		Disabled bool   `mapstructure:"disabled"`
		Secret   string `mapstructure:"secret"`
	} `mapstructure:"auth"`
	Upload struct {
		Driver       string `mapstructure:"driver"`
		Dir          string `mapstructure:"dir"`
		PublicPrefix string `mapstructure:"public_prefix"`
		MaxBytes     int64  `mapstructure:"max_bytes"`
		S3           struct {
			Bucket    string `mapstructure:"bucket"`
			Region    string `mapstructure:"region"`
			Endpoint  string `mapstructure:"endpoint"`
			AccessKey string `mapstructure:"access_key"`
			SecretKey string `mapstructure:"secret_key"`
			BaseURL   string `mapstructure:"base_url"`
		} `mapstructure:"s3"`
	} `mapstructure:"upload"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}
