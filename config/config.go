package config

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Init reads config.yml with viper and returns the populated Config.
// The struct is handed to main and injected downwards, nothing in this
// package keeps global state.
func Init() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetConfigName("config.yml")

	configPaths := []string{
		"./config",
		"../config",
		"../../config",
		".",
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}
	logrus.Infof("Successfully read config file: %s", viper.ConfigFileUsed())

	conf := &Config{}
	conf.Server.Addr = viper.GetString("server.addr")

	conf.Mysql.Addr = viper.GetString("mysql.addr")
	conf.Mysql.Database = viper.GetString("mysql.database")
	conf.Mysql.Username = viper.GetString("mysql.username")
	conf.Mysql.Password = viper.GetString("mysql.password")
	conf.Mysql.Charset = viper.GetString("mysql.charset")

	conf.Redis.Addr = viper.GetString("redis.addr")
	conf.Redis.Password = viper.GetString("redis.password")
	conf.Redis.DB = viper.GetInt("redis.db")

	conf.Minio.Endpoint = viper.GetString("minio.endpoint")
	conf.Minio.AccessKey = viper.GetString("minio.access_key")
	conf.Minio.SecretKey = viper.GetString("minio.secret_key")
	conf.Minio.UseSSL = viper.GetBool("minio.use_ssl")
	conf.Minio.PublicUrl = viper.GetString("minio.public_url")

	conf.Jwt.Secret = viper.GetString("jwt.secret")
	conf.Jwt.AccessExpireMin = viper.GetInt("jwt.access_expire_min")
	conf.Jwt.RefreshExpireMin = viper.GetInt("jwt.refresh_expire_min")

	logrus.Infof("Config loaded - MySQL: %s@%s/%s",
		conf.Mysql.Username, conf.Mysql.Addr, conf.Mysql.Database)

	return conf, nil
}
