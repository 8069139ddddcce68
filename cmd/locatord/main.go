package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/PaceTNT/office-map/internal/locator"
)

func main() {
	var err error
	var configFile string
	var config locator.Config

	logger := logrus.New()

	rootCmd := &cobra.Command{
		Use:   "locatord",
		Short: "API server for the office floor plan employee locator",
		// Main Entry Point
		Run: func(c *cobra.Command, args []string) {
			if lvl, lvlErr := logrus.ParseLevel(config.Log.Level); lvlErr == nil {
				logger.SetLevel(lvl)
			}

			e, err := locator.New(config, logger)
			if err != nil {
				logger.Fatalf("Failed on init: %v", err)
			}

			err = e.Run()
			if err != nil {
				logger.Fatalf("Failed on start: %v", err)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.json", "Path to configuration")

	// Defaults
	viper.SetDefault("http.listen", ":8080")
	viper.SetDefault("http.server_name", "office-map")
	viper.SetDefault("db.driver", "mysql")
	viper.SetDefault("auth.disabled", false)
	viper.SetDefault("upload.driver", "fs")
	viper.SetDefault("upload.dir", "uploads")
	viper.SetDefault("upload.public_prefix", "/uploads")
	viper.SetDefault("upload.max_bytes", 5*1024*1024)
	viper.SetDefault("log.level", "info")

	// Read Configuration File Before Start
	cobra.OnInitialize(func() {
		_ = godotenv.Load()

		_, err := os.Stat(configFile)
		if os.IsNotExist(err) {
			envConfFile := os.Getenv("CONFIG_FILE")
			if envConfFile != "" {
				_, err := os.Stat(envConfFile)
				if os.IsNotExist(err) {
					log.Fatalf("Config file %s does not exist!", envConfFile)
				}

				configFile = envConfFile
			} else {
				log.Fatalf("Config file %s does not exist!", configFile)
			}
		}

		viper.SetConfigFile(configFile)
		viper.SetConfigType("json")
		err = viper.ReadInConfig()
		if err != nil {
			log.Fatalf("Failed to read config: %v", err)
		}

		// secrets may come from the environment / .env instead
		viper.BindEnv("auth.secret", "AUTH_SECRET")
		viper.BindEnv("db.mysql.password", "DB_PASSWORD")
		viper.BindEnv("upload.s3.access_key", "S3_ACCESS_KEY")
		viper.BindEnv("upload.s3.secret_key", "S3_SECRET_KEY")

		err = viper.Unmarshal(&config)
		if err != nil {
			log.Fatalf("Failed to parse config: %v", err)
		}

		log.Printf("Loaded config file: %s", configFile)
	})

	// Launch (cobra.OnInitialize -> rootCmd.Run)
	err = rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
