package config

type Config struct {
	Server Server `yaml:"server" mapstructure:"server"`
	Mysql  Mysql  `yaml:"mysql" mapstructure:"mysql"`
	Redis  Redis  `yaml:"redis" mapstructure:"redis"`
	Minio  Minio  `yaml:"minio" mapstructure:"minio"`
	Jwt    Jwt    `yaml:"jwt" mapstructure:"jwt"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

type Mysql struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Charset  string `yaml:"charset"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Minio struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
	PublicUrl string `yaml:"public_url"`
}

type Jwt struct {
	Secret           string `yaml:"secret"`
	AccessExpireMin  int    `yaml:"access_expire_min"`
	RefreshExpireMin int    `yaml:"refresh_expire_min"`
}
