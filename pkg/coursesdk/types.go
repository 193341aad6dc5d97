package coursesdk

import "encoding/json"

// envelope is the platform's uniform response wrapper. Both successes and
// failures use it; Data is deferred so callers can decode into their own
// types after the status check.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Page is a server-side page of results in the platform's Spring-style
// layout.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

// TokenPair is an access/refresh token pair as minted by the authentication
// endpoints. Both tokens are opaque bearer credentials; expiry and validity
// are server-determined.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserProfile is the authenticated user's profile as returned by
// GET /auth/info.
type UserProfile struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	Avatar      string   `json:"avatar"`
	Roles       []string `json:"roles"`
}

// Category is a course category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required"`
}

// Course is a short course offered on the platform.
type Course struct {
	ID           string  `json:"id"`
	Name         string  `json:"name" validate:"required"`
	CategoryID   string  `json:"categoryId" validate:"required"`
	CategoryName string  `json:"categoryName,omitempty"`
	Suitable     string  `json:"suitable,omitempty"`
	Description  string  `json:"description,omitempty"`
	Content      string  `json:"content,omitempty"`
	ContentTime  string  `json:"contentTime,omitempty"`
	Price        float64 `json:"price,omitempty" validate:"gte=0"`
	Thumbnail    string  `json:"thumbnail,omitempty"`
	PromoVideo   string  `json:"promoVideo,omitempty"`
}

// CourseUpdate carries a partial course update; nil fields are left
// untouched server-side.
type CourseUpdate struct {
	Name        *string  `json:"name,omitempty"`
	CategoryID  *string  `json:"categoryId,omitempty"`
	Suitable    *string  `json:"suitable,omitempty"`
	Description *string  `json:"description,omitempty"`
	Content     *string  `json:"content,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Thumbnail   *string  `json:"thumbnail,omitempty"`
	PromoVideo  *string  `json:"promoVideo,omitempty"`
}

// Classroom is a scheduled class of a course.
type Classroom struct {
	ID           string `json:"id"`
	Name         string `json:"name" validate:"required"`
	CourseID     string `json:"courseId" validate:"required"`
	LecturerID   string `json:"lecturerId" validate:"required"`
	LecturerName string `json:"lecturerName,omitempty"`
	StartDate    string `json:"startDate" validate:"required"`
	EndDate      string `json:"endDate" validate:"required,gtefield=StartDate"`
	Place        string `json:"place" validate:"required"`
	Capacity     int    `json:"capacity" validate:"gt=0"`
	Enrolled     int    `json:"enrolled,omitempty"`
}

// Lecturer is a course lecturer managed through the admin back office.
type Lecturer struct {
	ID                string   `json:"id"`
	Email             string   `json:"email" validate:"required,email"`
	Password          string   `json:"password,omitempty"`
	DisplayName       string   `json:"displayName" validate:"required"`
	DOB               string   `json:"dob,omitempty"`
	PhoneNumber       string   `json:"phoneNumber,omitempty"`
	Position          string   `json:"position,omitempty"`
	Degree            string   `json:"degree,omitempty"`
	Avatar            string   `json:"avatar,omitempty"`
	SpecializationIDs []string `json:"specializationIds,omitempty"`
}

// Enrollment is one row of the authenticated user's enrollments as returned
// by GET /api/members/my-courses.
type Enrollment struct {
	ClassroomID   string `json:"classroomId"`
	ClassroomName string `json:"classroomName"`
	CourseName    string `json:"courseName"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	Place         string `json:"place"`
}

// EnrollmentStatus is the answer to GET /api/members/check for one
// classroom.
type EnrollmentStatus struct {
	Registered bool `json:"registered"`
}
