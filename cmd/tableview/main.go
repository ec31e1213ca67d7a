package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fulldump/goconfig"
	"go.uber.org/zap"

	"github.com/fulldump/tableview/bootstrap"
	"github.com/fulldump/tableview/configuration"
	"github.com/fulldump/tableview/logging"
)

var banner = `
 _        _     _            _
| |_ __ _| |__ | | _____   _(_) _____      __
| __/ _' | '_ \| |/ _ \ \ / / |/ _ \ \ /\ / /
| || (_| | |_) | |  __/\ V /| |  __/\ V  V /
 \__\__,_|_.__/|_|\___| \_/ |_|\___| \_/\_/
                             version ` + bootstrap.VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(&c)

	if c.Version {
		fmt.Println("Version:", bootstrap.VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	logger, err := logging.New(c.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: logger:", err.Error())
		os.Exit(-1)
	}
	defer logger.Sync()

	start, _, err := bootstrap.Bootstrap(&c, logger)
	if err != nil {
		logger.Error("bootstrap", zap.Error(err))
		logger.Sync()
		os.Exit(-1)
	}

	start()
}
