package app

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/Hoangit1506/shortcourse/pkg/coursesdk"
)

func (app *Application) cmdEnroll(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("enroll", flag.ContinueOnError)
	classroomID := fs.String("classroom", "", "classroom id to register for")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *classroomID == "" {
		return fmt.Errorf("enroll requires -classroom")
	}

	if _, err := app.requireLogin(); err != nil {
		return err
	}

	status, err := app.api.CheckEnrollment(ctx, *classroomID)
	if err != nil {
		return err
	}
	if status.Registered {
		fmt.Fprintln(app.out, "Already registered for this classroom.")
		return nil
	}

	if err := app.api.Enroll(ctx, *classroomID); err != nil {
		return err
	}

	fmt.Fprintf(app.out, "Registered for classroom %s\n", *classroomID)
	return nil
}

func (app *Application) cmdUnenroll(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("unenroll", flag.ContinueOnError)
	classroomID := fs.String("classroom", "", "classroom id to cancel")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *classroomID == "" {
		return fmt.Errorf("unenroll requires -classroom")
	}

	if _, err := app.requireLogin(); err != nil {
		return err
	}

	if err := app.api.CancelEnrollment(ctx, *classroomID); err != nil {
		return err
	}

	fmt.Fprintf(app.out, "Cancelled registration for classroom %s\n", *classroomID)
	return nil
}

func (app *Application) cmdMyCourses(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("my-courses", flag.ContinueOnError)
	var q coursesdk.ListQuery
	listFlags(fs, &q)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := app.requireLogin(); err != nil {
		return err
	}

	page, err := app.api.MyCourses(ctx, q)
	if err != nil {
		return err
	}

	if len(page.Content) == 0 {
		fmt.Fprintln(app.out, "No enrollments.")
		return nil
	}

	tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CLASSROOM\tCOURSE\tSTART\tEND\tPLACE")
	for _, e := range page.Content {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.ClassroomName, e.CourseName, e.StartDate, e.EndDate, e.Place)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	app.printPageFooter(page.Number, page.TotalPages, page.TotalElements)
	return nil
}
