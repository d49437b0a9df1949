package main

import (
	"fmt"
	"log"
	"os"

	"svexport/core"
	"svexport/core/gradebook"
	emailsvc "svexport/services/email"
	logsvc "svexport/services/logger"
	"svexport/services/studentvue"
)

func main() {
	std := log.New(os.Stderr, "EXPORT : ", log.LstdFlags|log.Lmicroseconds)

	// set up services
	var logger core.Logger
	if core.Conf.Debug || core.Conf.RollbarToken == "" {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, &core.Conf)
	}

	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	svc := gradebook.NewService(studentvue.NewClient(logger), mailSvc, logger)

	// start CLI
	cli := commandLine{svc: svc}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("export failed: %v", err), err)
		}
		os.Exit(1)
	}
}
