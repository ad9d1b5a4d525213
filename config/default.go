package config

func GetDefault() Config {
	return Config{
		Name: "affected",
	}
}
