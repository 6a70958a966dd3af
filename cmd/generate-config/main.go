package main

import (
	"flag"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
	"upanddown-server/internal/config"
)

var env = flag.Bool("env", false, "list the environment variables instead of printing YAML")

// prints the default configuration as YAML, suitable for config.yaml
func main() {
	flag.Parse()

	cfg := config.DefaultConfig()
	if *env {
		if err := envconfig.Usage("upd", &cfg); err != nil {
			logrus.WithError(err).Fatal("could not list environment variables")
		}

		return
	}

	if err := yaml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
		logrus.WithError(err).Fatal("could not encode configuration")
	}
}
