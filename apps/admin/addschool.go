package main

import (
	"context"

	"github.com/trezcool/trackx/core/school"
)

// addSchool registers a new, active School.
func (cli *commandLine) addSchool(code, name, email string) (school.School, error) {
	data := school.NewSchool{
		SchoolCode: code,
		Name:       name,
		Email:      email,
	}
	if err := data.Validate(cli.validate, cli.translator); err != nil {
		return school.School{}, err
	}
	return cli.schoolSvc.Create(context.Background(), data)
}
