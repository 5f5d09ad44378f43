package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/spf13/cobra"
)

var validateInput string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a saved resume document",
	Long:  "Checks a saved resume document against the document schema and the wizard's form rules. Exits non-zero when problems are found.",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to document JSON, or - for stdin (required)")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

// documentProblems runs the form rules over every record of doc. Keys are
// prefixed with the section and record id.
func documentProblems(doc resume.Document) resume.FieldErrors {
	problems := resume.FieldErrors{}
	collect := func(prefix string, err error) {
		var fe resume.FieldErrors
		if errors.As(err, &fe) {
			for k, v := range fe {
				problems[prefix+"."+k] = v
			}
		}
	}

	collect("personalInfo", resume.ValidatePersonalInfo(doc.PersonalInfo))
	for _, e := range doc.Experience {
		collect("experience["+e.ID+"]", resume.ValidateExperience(e))
	}
	for _, e := range doc.Education {
		collect("education["+e.ID+"]", resume.ValidateEducation(e))
	}
	for _, sk := range doc.Skills {
		collect("skills["+sk.ID+"]", resume.ValidateSkill(sk))
	}
	return problems
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	doc, data, err := readDocument(validateInput, cmd.InOrStdin(), logger)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if err := schemas.ValidateDocument(data); err != nil {
		printer.PrintValidation(err)
		return fmt.Errorf("document does not match schema")
	}
	if problems := documentProblems(doc); len(problems) > 0 {
		printer.PrintValidation(problems)
		return fmt.Errorf("validation found %d problem(s)", len(problems))
	}

	printer.PrintValidation(nil)
	return nil
}
