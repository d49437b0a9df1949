package core

import (
	"log"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf is the resolved runtime configuration, loaded once at startup from
// defaults, an optional .env file in the working directory and STUDENTVUE_*
// environment variables.
var Conf Config

type Config struct {
	Debug    bool
	TestMode bool
	AppName  string
	Env      string // dev (local; default), test, qa, prod
	Build    string

	// portal
	PortalURL        string
	ReportingPeriods int
	RequestTimeout   time.Duration
	RequestDelay     time.Duration

	// credentials; either may be empty, the CLI prompts for missing values
	Username string
	Password string

	OutputFile string

	RollbarToken     string
	SendgridApiKey   string
	defaultFromEmail string
}

func (c Config) DefaultFromEmail() mail.Address {
	if addr, err := mail.ParseAddress(c.defaultFromEmail); err == nil {
		return *addr
	}
	return mail.Address{Name: c.AppName, Address: c.defaultFromEmail}
}

func init() {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appname", "SVExport")
	v.SetDefault("portalurl", "https://sisstudent.fcps.edu/SVUE/Service/PXPCommunication.asmx")
	v.SetDefault("reportingperiods", 4)
	v.SetDefault("requesttimeout", 30*time.Second)
	v.SetDefault("requestdelay", 250*time.Millisecond)
	v.SetDefault("outputfile", "grades.csv")
	v.SetDefault("fromemail", "noreply@localhost")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testmode", true)
	}

	// load .env if it exists (ignore if it does not)
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Fatalf("config.godotenv: %v", err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(.env): %v", err)
	}
	v.SetEnvPrefix("STUDENTVUE")
	v.AutomaticEnv()

	Conf = Config{
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testmode"),
		AppName:          v.GetString("appname"),
		Env:              strings.ToLower(env),
		Build:            v.GetString("build"),
		PortalURL:        v.GetString("portalurl"),
		ReportingPeriods: v.GetInt("reportingperiods"),
		RequestTimeout:   v.GetDuration("requesttimeout"),
		RequestDelay:     v.GetDuration("requestdelay"),
		Username:         v.GetString("username"),
		Password:         v.GetString("password"),
		OutputFile:       v.GetString("outputfile"),
		RollbarToken:     v.GetString("rollbartoken"),
		SendgridApiKey:   v.GetString("sendgridapikey"),
		defaultFromEmail: v.GetString("fromemail"),
	}
}
