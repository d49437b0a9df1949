package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/mail"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"svexport/core"
	"svexport/core/gradebook"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	readLineFunc     = readLine          // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	svc *gradebook.Service
}

func (cli *commandLine) run(args []string) error {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	output := exportCmd.String("output", core.Conf.OutputFile, "Path of the CSV file to write.")
	emailTo := exportCmd.String("email", "", "Optionally email the finished CSV to this address.")
	if err := exportCmd.Parse(args[1:]); err != nil {
		return err
	}

	var addr *mail.Address
	if *emailTo != "" {
		var err error
		if addr, err = mail.ParseAddress(*emailTo); err != nil {
			exportCmd.Usage()
			return errHelp
		}
	}

	creds, err := cli.credentials()
	if err != nil {
		return err
	}

	rows, err := cli.svc.ExportFile(context.Background(), creds, *output)
	if err != nil {
		return err
	}
	fmt.Printf("Export complete. %d assignment rows saved to %q.\n", rows, *output)

	if addr != nil {
		if err := cli.svc.EmailExport(*addr, *output, rows); err != nil {
			return err
		}
		fmt.Printf("Export emailed to %s.\n", addr.Address)
	}
	return nil
}

// credentials resolves the StudentVUE login: environment (.env included)
// first, interactive prompt for whatever is missing.
func (cli *commandLine) credentials() (gradebook.Credentials, error) {
	creds := gradebook.Credentials{
		Username: core.CleanString(core.Conf.Username),
		Password: core.Conf.Password,
	}
	if creds.Username != "" && creds.Password != "" {
		fmt.Println("Credentials loaded from environment.")
		return creds, nil
	}

	fmt.Println("No credentials found in environment. Please provide them.")
	if creds.Username == "" {
		fmt.Print("Enter StudentVUE username: ")
		uname, err := readLineFunc()
		if err != nil {
			return creds, err
		}
		creds.Username = core.CleanString(uname)
	}
	if creds.Password == "" {
		fmt.Print("Enter StudentVUE password: ")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return creds, err
		}
		creds.Password = string(pwd)
	}
	return creds, nil
}

func readLine() (string, error) {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
