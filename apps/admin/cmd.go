package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/trackx/core/school"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db         *sql.DB
	schoolSvc  *school.Service
	validate   *validator.Validate
	translator ut.Translator
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a goose command (up, down, status, version...) on the embedded migrations")
	fmt.Println("  addschool -code CODE -name NAME -email EMAIL - register a new school")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addSchoolCmd := flag.NewFlagSet("addschool", flag.ContinueOnError)
	addSchoolCode := addSchoolCmd.String("code", "", "The school code, must be unique.")
	addSchoolName := addSchoolCmd.String("name", "", "The school name.")
	addSchoolEmail := addSchoolCmd.String("email", "", "The school contact email, invoices are sent there.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "addschool":
		if err := addSchoolCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *addSchoolCode == "" || *addSchoolName == "" || *addSchoolEmail == "" {
			addSchoolCmd.Usage()
			return errHelp
		}
		sch, err := cli.addSchool(*addSchoolCode, *addSchoolName, *addSchoolEmail)
		if err != nil {
			return err
		}
		fmt.Printf("school %s created (id: %d)\n", sch.SchoolCode, sch.ID)
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}
