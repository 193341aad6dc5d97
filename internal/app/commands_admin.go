package app

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Hoangit1506/shortcourse/pkg/coursesdk"
)

func (app *Application) cmdCoursesAdmin(ctx context.Context, fs *flag.FlagSet, action, id string) error {
	if _, err := app.requireRoles("ADMIN"); err != nil {
		return err
	}

	switch action {
	case "create":
		course := coursesdk.Course{
			Name:        fs.Lookup("name").Value.String(),
			CategoryID:  fs.Lookup("category").Value.String(),
			Suitable:    fs.Lookup("suitable").Value.String(),
			Description: fs.Lookup("description").Value.String(),
			ContentTime: fs.Lookup("duration").Value.String(),
		}
		if _, err := fmt.Sscanf(fs.Lookup("price").Value.String(), "%f", &course.Price); err != nil {
			course.Price = 0
		}
		created, err := app.api.CreateCourse(ctx, course)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.out, "Created course %s (%s)\n", created.Name, created.ID)
		return nil

	case "update":
		if id == "" {
			return fmt.Errorf("update requires -id")
		}
		var update coursesdk.CourseUpdate
		fs.Visit(func(f *flag.Flag) {
			v := f.Value.String()
			switch f.Name {
			case "name":
				update.Name = &v
			case "category":
				update.CategoryID = &v
			case "suitable":
				update.Suitable = &v
			case "description":
				update.Description = &v
			case "price":
				var p float64
				if _, err := fmt.Sscanf(v, "%f", &p); err == nil {
					update.Price = &p
				}
			}
		})
		updated, err := app.api.UpdateCourse(ctx, id, update)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.out, "Updated course %s\n", updated.ID)
		return nil

	case "delete":
		if id == "" {
			return fmt.Errorf("delete requires -id")
		}
		if err := app.api.DeleteCourse(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(app.out, "Deleted course %s\n", id)
		return nil
	}

	return fmt.Errorf("unknown action %q", action)
}

func (app *Application) cmdClassroomsAdmin(ctx context.Context, fs *flag.FlagSet, action, id string) error {
	if _, err := app.requireRoles("ADMIN"); err != nil {
		return err
	}

	room := coursesdk.Classroom{
		Name:       fs.Lookup("name").Value.String(),
		CourseID:   fs.Lookup("course").Value.String(),
		LecturerID: fs.Lookup("lecturer").Value.String(),
		StartDate:  fs.Lookup("start").Value.String(),
		EndDate:    fs.Lookup("end").Value.String(),
		Place:      fs.Lookup("place").Value.String(),
	}
	if _, err := fmt.Sscanf(fs.Lookup("capacity").Value.String(), "%d", &room.Capacity); err != nil {
		room.Capacity = 0
	}

	switch action {
	case "create":
		created, err := app.api.CreateClassroom(ctx, room)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.out, "Created classroom %s (%s)\n", created.Name, created.ID)
		return nil

	case "update":
		if id == "" {
			return fmt.Errorf("update requires -id")
		}
		updated, err := app.api.UpdateClassroom(ctx, id, room)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.out, "Updated classroom %s\n", updated.ID)
		return nil

	case "delete":
		if id == "" {
			return fmt.Errorf("delete requires -id")
		}
		if err := app.api.DeleteClassroom(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(app.out, "Deleted classroom %s\n", id)
		return nil
	}

	return fmt.Errorf("unknown action %q", action)
}

func (app *Application) cmdLecturersAdmin(ctx context.Context, fs *flag.FlagSet, action, id string) error {
	if _, err := app.requireRoles("ADMIN"); err != nil {
		return err
	}

	lect := coursesdk.Lecturer{
		Email:       fs.Lookup("email").Value.String(),
		Password:    fs.Lookup("password").Value.String(),
		DisplayName: fs.Lookup("name").Value.String(),
		DOB:         fs.Lookup("dob").Value.String(),
		PhoneNumber: fs.Lookup("phone").Value.String(),
		Position:    fs.Lookup("position").Value.String(),
		Degree:      fs.Lookup("degree").Value.String(),
	}
	if specs := fs.Lookup("specializations").Value.String(); specs != "" {
		lect.SpecializationIDs = strings.Split(specs, ",")
	}

	switch action {
	case "create":
		created, err := app.api.CreateLecturer(ctx, lect)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.out, "Created lecturer %s (%s)\n", created.DisplayName, created.ID)
		return nil

	case "update":
		if id == "" {
			return fmt.Errorf("update requires -id")
		}
		updated, err := app.api.UpdateLecturer(ctx, id, lect)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.out, "Updated lecturer %s\n", updated.ID)
		return nil

	case "delete":
		if id == "" {
			return fmt.Errorf("delete requires -id")
		}
		if err := app.api.DeleteLecturer(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(app.out, "Deleted lecturer %s\n", id)
		return nil
	}

	return fmt.Errorf("unknown action %q", action)
}

func (app *Application) cmdUpload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	kind := fs.String("kind", "", "upload kind: avatar, thumbnail or video")
	file := fs.String("file", "", "path of the file to upload")
	courseID := fs.String("course", "", "course id (thumbnail and video uploads)")
	remove := fs.String("delete", "", "stored file URL to delete instead of uploading")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := app.requireRoles("ADMIN"); err != nil {
		return err
	}

	if *remove != "" {
		if err := app.api.DeleteUpload(ctx, *remove); err != nil {
			return err
		}
		fmt.Fprintln(app.out, "Deleted.")
		return nil
	}

	if *file == "" {
		return fmt.Errorf("upload requires -file")
	}

	f, err := os.Open(*file)
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	name := filepath.Base(*file)

	var url string
	switch *kind {
	case "avatar":
		url, err = app.api.UploadAvatar(ctx, name, f)
	case "thumbnail":
		if *courseID == "" {
			return fmt.Errorf("thumbnail uploads require -course")
		}
		url, err = app.api.UploadCourseThumbnail(ctx, *courseID, name, f)
	case "video":
		if *courseID == "" {
			return fmt.Errorf("video uploads require -course")
		}
		url, err = app.api.UploadCourseVideo(ctx, *courseID, name, f)
	default:
		return fmt.Errorf("unknown upload kind %q", *kind)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(app.out, url)
	return nil
}
