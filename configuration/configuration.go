package configuration

type Configuration struct {
	HttpAddr   string `usage:"HTTP address"`
	Dir        string `usage:"data directory"`
	Screens    string `usage:"screens YAML file, empty for the built-in products, orders and users"`
	Seed       int    `usage:"fill missing screen collections with mock data from this seed, 0 disables it"`
	MockSize   int    `usage:"records per mocked collection"`
	Debug      bool   `usage:"development logging"`
	Version    bool   `usage:"show version and exit"`
	ShowBanner bool   `usage:"show big banner"`
	ShowConfig bool   `usage:"print config"`
}

func Default() Configuration {
	return Configuration{
		HttpAddr:   "127.0.0.1:8080",
		Dir:        "data",
		MockSize:   250,
		ShowBanner: true,
	}
}
