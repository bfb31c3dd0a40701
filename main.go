package main

import (
	"flag"

	"github.com/joho/godotenv"
	"redsys/config"
	"redsys/internal"
	"redsys/services"
)

func main() {

	logger := internal.NewLogger("internal", false, nil)

	configPath := flag.String("conf", "config.yml", "path to config file")
	envPath := flag.String("env", ".env", "optional file with environment overrides")
	flag.Parse()

	if err := godotenv.Load(*envPath); err == nil {
		logger.Info("environment loaded from " + *envPath)
	}

	logger.Info("using config file: " + *configPath)
	conf, err := config.GetConfig(*configPath)
	if err != nil {
		logger.Error("boot", err)
		return
	}
	internal.SetLogFile(conf.Log.File, conf.Log.MaxSize, conf.Log.MaxBackups, conf.Log.MaxAge)

	var mongo services.Database
	if conf.Mongo.Enabled {
		client, err := internal.NewMongoClient(conf)
		if err != nil {
			logger.Error("mongo client", err)
			return
		}
		mongo = client
		logger.Info("mongo client initialized")
	}

	payments := internal.NewPayments(conf)
	payments.SetLogger(internal.NewLogger("payments", conf.IsDebug, mongo))
	payments.SetDatabase(mongo)

	server := internal.NewServer(conf)
	server.SetLogger(internal.NewLogger("server", conf.IsDebug, mongo))
	server.SetPaymentsService(payments)

	err = server.Start()
	if err != nil {
		logger.Error("server start", err)
		return
	}

}
