package app

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Hoangit1506/shortcourse/pkg/coursesdk"
)

// listFlags registers the shared paging and filter flags.
func listFlags(fs *flag.FlagSet, q *coursesdk.ListQuery) {
	fs.IntVar(&q.Page, "page", 0, "page number, starting at 0")
	fs.IntVar(&q.Size, "size", 20, "page size")
	fs.StringVar(&q.Keyword, "keyword", "", "search keyword")
}

func (app *Application) cmdCategories(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("categories", flag.ContinueOnError)
	var q coursesdk.ListQuery
	listFlags(fs, &q)
	id := fs.String("id", "", "show a single category by id")
	create := fs.String("create", "", "create a category with this name (admin)")
	rename := fs.String("rename", "", "new name for -id (admin)")
	remove := fs.Bool("delete", false, "delete the category named by -id (admin)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *create != "":
		if _, err := app.requireRoles("ADMIN"); err != nil {
			return err
		}
		cat, err := app.api.CreateCategory(ctx, coursesdk.Category{Name: *create})
		if err != nil {
			return err
		}
		fmt.Fprintf(app.out, "Created category %s (%s)\n", cat.Name, cat.ID)
		return nil

	case *rename != "":
		if _, err := app.requireRoles("ADMIN"); err != nil {
			return err
		}
		if *id == "" {
			return fmt.Errorf("-rename requires -id")
		}
		cat, err := app.api.UpdateCategory(ctx, *id, coursesdk.Category{Name: *rename})
		if err != nil {
			return err
		}
		fmt.Fprintf(app.out, "Renamed category %s to %s\n", cat.ID, cat.Name)
		return nil

	case *remove:
		if _, err := app.requireRoles("ADMIN"); err != nil {
			return err
		}
		if *id == "" {
			return fmt.Errorf("-delete requires -id")
		}
		if err := app.api.DeleteCategory(ctx, *id); err != nil {
			return err
		}
		fmt.Fprintf(app.out, "Deleted category %s\n", *id)
		return nil

	case *id != "":
		cat, err := app.api.GetCategory(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.out, "%s\t%s\n", cat.ID, cat.Name)
		return nil
	}

	page, err := app.api.ListCategories(ctx, q)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, cat := range page.Content {
		fmt.Fprintf(tw, "%s\t%s\n", cat.ID, cat.Name)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	app.printPageFooter(page.Number, page.TotalPages, page.TotalElements)
	return nil
}

func (app *Application) cmdCourses(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("courses", flag.ContinueOnError)
	var q coursesdk.ListQuery
	listFlags(fs, &q)
	fs.StringVar(&q.CategoryID, "category", "", "filter by category id, or category for -action create/update")
	id := fs.String("id", "", "show a single course by id")
	action := fs.String("action", "", "admin action: create, update or delete")
	fs.String("name", "", "course name (create/update)")
	fs.String("price", "", "course price (create/update)")
	fs.String("suitable", "", "who the course suits (create/update)")
	fs.String("description", "", "course description (create/update)")
	fs.String("duration", "", "course duration label (create/update)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *action != "" {
		return app.cmdCoursesAdmin(ctx, fs, *action, *id)
	}

	if *id != "" {
		course, err := app.api.GetCourse(ctx, *id)
		if err != nil {
			return err
		}
		app.printCourse(course)
		return nil
	}

	page, err := app.api.ListCourses(ctx, q)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE")
	for _, course := range page.Content {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f\n", course.ID, course.Name, course.CategoryName, course.Price)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	app.printPageFooter(page.Number, page.TotalPages, page.TotalElements)
	return nil
}

func (app *Application) printCourse(course coursesdk.Course) {
	fmt.Fprintf(app.out, "%s (%s)\n", course.Name, course.ID)
	fmt.Fprintf(app.out, "Category: %s\n", course.CategoryName)
	if course.Price > 0 {
		fmt.Fprintf(app.out, "Price: %.0f\n", course.Price)
	}
	if course.ContentTime != "" {
		fmt.Fprintf(app.out, "Duration: %s\n", course.ContentTime)
	}
	if course.Suitable != "" {
		fmt.Fprintf(app.out, "Suitable for: %s\n", course.Suitable)
	}
	if course.Description != "" {
		fmt.Fprintf(app.out, "\n%s\n", course.Description)
	}
}

func (app *Application) cmdClassrooms(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("classrooms", flag.ContinueOnError)
	var q coursesdk.ListQuery
	listFlags(fs, &q)
	fs.StringVar(&q.CourseID, "course", "", "filter by course id, or course for -action create/update")
	id := fs.String("id", "", "show a single classroom by id")
	admin := fs.Bool("admin", false, "use the admin listing (admin)")
	action := fs.String("action", "", "admin action: create, update or delete")
	fs.String("name", "", "classroom name (create/update)")
	fs.String("lecturer", "", "lecturer id (create/update)")
	fs.String("start", "", "start date, YYYY-MM-DD (create/update)")
	fs.String("end", "", "end date, YYYY-MM-DD (create/update)")
	fs.String("place", "", "classroom location (create/update)")
	fs.String("capacity", "", "seat capacity (create/update)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *action != "" {
		return app.cmdClassroomsAdmin(ctx, fs, *action, *id)
	}

	if *id != "" {
		room, err := app.api.GetClassroom(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.out, "%s (%s)\n", room.Name, room.ID)
		fmt.Fprintf(app.out, "Lecturer: %s\n", room.LecturerName)
		fmt.Fprintf(app.out, "Schedule: %s to %s at %s\n", room.StartDate, room.EndDate, room.Place)
		fmt.Fprintf(app.out, "Seats: %d/%d\n", room.Enrolled, room.Capacity)
		return nil
	}

	var (
		page coursesdk.Page[coursesdk.Classroom]
		err  error
	)
	if *admin {
		if _, err := app.requireRoles("ADMIN"); err != nil {
			return err
		}
		page, err = app.api.ListClassroomsAdmin(ctx, q)
	} else {
		page, err = app.api.ListClassrooms(ctx, q)
	}
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLECTURER\tSTART\tSEATS")
	for _, room := range page.Content {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d/%d\n",
			room.ID, room.Name, room.LecturerName, room.StartDate, room.Enrolled, room.Capacity)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	app.printPageFooter(page.Number, page.TotalPages, page.TotalElements)
	return nil
}

func (app *Application) cmdLecturers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("lecturers", flag.ContinueOnError)
	var q coursesdk.ListQuery
	listFlags(fs, &q)
	id := fs.String("id", "", "show a single lecturer by id")
	action := fs.String("action", "", "admin action: create, update or delete")
	fs.String("email", "", "lecturer email (create/update)")
	fs.String("password", "", "initial password (create)")
	fs.String("name", "", "display name (create/update)")
	fs.String("dob", "", "date of birth, YYYY-MM-DD (create/update)")
	fs.String("phone", "", "phone number (create/update)")
	fs.String("position", "", "position title (create/update)")
	fs.String("degree", "", "academic degree (create/update)")
	fs.String("specializations", "", "comma-separated category ids (create/update)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *action != "" {
		return app.cmdLecturersAdmin(ctx, fs, *action, *id)
	}

	if *id != "" {
		lect, err := app.api.GetLecturer(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.out, "%s <%s>\n", lect.DisplayName, lect.Email)
		if lect.Position != "" || lect.Degree != "" {
			fmt.Fprintf(app.out, "%s\n", strings.TrimSpace(lect.Position+" "+lect.Degree))
		}
		return nil
	}

	page, err := app.api.ListLecturers(ctx, q)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPOSITION")
	for _, lect := range page.Content {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", lect.ID, lect.DisplayName, lect.Email, lect.Position)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	app.printPageFooter(page.Number, page.TotalPages, page.TotalElements)
	return nil
}

func (app *Application) printPageFooter(number, totalPages int, totalElements int64) {
	if totalPages > 1 {
		fmt.Fprintf(app.out, "Page %d of %d (%d total)\n", number+1, totalPages, totalElements)
	}
}
