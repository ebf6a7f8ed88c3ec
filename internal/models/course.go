package models

import "time"

type Course struct {
	ID                 string    `json:"id" mapstructure:"id"`
	Title              string    `json:"title" mapstructure:"title"`
	Description        string    `json:"description" mapstructure:"description"`
	Category           string    `json:"category" mapstructure:"category"`
	Price              int       `json:"price" mapstructure:"price"`
	Thumbnail          string    `json:"thumbnail" mapstructure:"thumbnail"`
	Tags               []string  `json:"tags" mapstructure:"tags"`
	LearningObjectives []string  `json:"learningObjectives" mapstructure:"learningObjectives"`
	Prerequisites      []string  `json:"prerequisites" mapstructure:"prerequisites"`
	Videos             []Video   `json:"videos" mapstructure:"videos"`
	EnrolledStudents   []string  `json:"enrolledStudents" mapstructure:"enrolledStudents"`
	InstructorID       string    `json:"instructorId,omitempty" mapstructure:"instructorId"`
	InstructorName     string    `json:"instructorName,omitempty" mapstructure:"instructorName"`
	CreatedAt          time.Time `json:"createdAt" mapstructure:"createdAt"`
}

// Video is embedded in its Course; it has no collection of its own.
type Video struct {
	ID       string `json:"id" mapstructure:"id"`
	Title    string `json:"title" mapstructure:"title"`
	VideoURL string `json:"videoUrl" mapstructure:"videoUrl"`
	// Duration in seconds.
	Duration int `json:"duration" mapstructure:"duration"`
	Order    int `json:"order" mapstructure:"order"`
	// Map from language code to subtitle text
	Subtitles     map[string]string `json:"subtitles" mapstructure:"subtitles"`
	BoardTextData []BoardText       `json:"boardTextData" mapstructure:"boardTextData"`
}

// BoardText is text written on the board at a point in the video.
type BoardText struct {
	Text      string `json:"text" mapstructure:"text"`
	Timestamp int    `json:"timestamp" mapstructure:"timestamp"`
	Language  string `json:"language" mapstructure:"language"`
	// Map from language code to translated text
	TranslatedText map[string]string `json:"translatedText" mapstructure:"translatedText"`
}

// ListCoursesRequest is the parameter struct for the ListCourses function.
type ListCoursesRequest struct {
	Category string
	Search   string
}

type CreateCourseRequest struct {
	Title              string   `json:"title" validate:"required"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Price              int      `json:"price" validate:"gte=0"`
	Thumbnail          string   `json:"thumbnail"`
	Tags               []string `json:"tags"`
	LearningObjectives []string `json:"learningObjectives"`
	Prerequisites      []string `json:"prerequisites"`
	// Videos are added in one go, each the way AddVideo would add it.
	Videos []AddVideoRequest `json:"videos" validate:"dive"`
	// The instructor defaults to the guest making the request.
	InstructorGuestID   string `json:"instructorGuestId"`
	InstructorGuestName string `json:"instructorGuestName"`
	// Will be set from context
	CreatedBy     string `json:"-"`
	CreatedByName string `json:"-"`
}

type EnrollRequest struct {
	CourseID string
	GuestID  string
	// GuestName is used if the guest has no profile yet.
	GuestName string
}

type AddVideoRequest struct {
	CourseID string `json:"-"`
	Title    string `json:"title" validate:"required"`
	VideoURL string `json:"videoUrl" validate:"required"`
	Duration int    `json:"duration" validate:"gte=0"`
	// Order defaults to the position at the end of the list.
	Order *int `json:"order"`
}

type UpdateSubtitlesRequest struct {
	CourseID   string `json:"-"`
	VideoIndex int    `json:"-"`
	Language   string `json:"language" validate:"required"`
	Text       string `json:"text"`
}

type AddBoardTextRequest struct {
	CourseID       string            `json:"-"`
	VideoIndex     int               `json:"-"`
	Text           string            `json:"text" validate:"required"`
	Timestamp      int               `json:"timestamp" validate:"gte=0"`
	Language       string            `json:"language"`
	TranslatedText map[string]string `json:"translatedText"`
}
