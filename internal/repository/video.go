package repository

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"sarvasva/internal/models"
	"sarvasva/internal/qerrors"
)

// GetVideos returns the videos of a course ordered by their Order field.
func (jr *JSONRepository) GetVideos(courseID string) ([]models.Video, error) {
	course, err := jr.GetCourse(courseID)
	if err != nil {
		return nil, err
	}

	videos := append([]models.Video{}, course.Videos...)
	sortVideos(videos)
	return videos, nil
}

// AddVideo appends a video to a course. Without an explicit order the video goes to the end.
func (jr *JSONRepository) AddVideo(req *models.AddVideoRequest) (*models.Video, error) {
	var video models.Video
	_, err := jr.courses.update(jr.courses.byID(req.CourseID), qerrors.CourseNotFoundError, func(c *models.Course) error {
		video = newVideo(req, len(c.Videos))
		c.Videos = append(c.Videos, video)
		// Stored videos stay sorted so a video index means the same thing everywhere.
		sortVideos(c.Videos)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &video, nil
}

func newVideo(req *models.AddVideoRequest, defaultOrder int) models.Video {
	video := models.Video{
		ID:            uuid.New().String(),
		Title:         strings.TrimSpace(req.Title),
		VideoURL:      req.VideoURL,
		Duration:      req.Duration,
		Order:         defaultOrder,
		Subtitles:     map[string]string{},
		BoardTextData: []models.BoardText{},
	}
	if req.Order != nil {
		video.Order = *req.Order
	}
	return video
}

// UpdateSubtitles sets the subtitle text of one language on the video at req.VideoIndex.
func (jr *JSONRepository) UpdateSubtitles(req *models.UpdateSubtitlesRequest) (*models.Video, error) {
	return jr.updateVideo(req.CourseID, req.VideoIndex, func(v *models.Video) {
		if v.Subtitles == nil {
			v.Subtitles = map[string]string{}
		}
		v.Subtitles[req.Language] = req.Text
	})
}

// AddBoardText appends a board text entry to the video at req.VideoIndex.
func (jr *JSONRepository) AddBoardText(req *models.AddBoardTextRequest) (*models.Video, error) {
	entry := models.BoardText{
		Text:           req.Text,
		Timestamp:      req.Timestamp,
		Language:       req.Language,
		TranslatedText: req.TranslatedText,
	}
	if entry.Language == "" {
		entry.Language = "en"
	}
	if entry.TranslatedText == nil {
		entry.TranslatedText = map[string]string{}
	}

	return jr.updateVideo(req.CourseID, req.VideoIndex, func(v *models.Video) {
		v.BoardTextData = append(v.BoardTextData, entry)
	})
}

func (jr *JSONRepository) updateVideo(courseID string, index int, fn func(*models.Video)) (*models.Video, error) {
	var video models.Video
	_, err := jr.courses.update(jr.courses.byID(courseID), qerrors.CourseNotFoundError, func(c *models.Course) error {
		// Indexes follow the order GetVideos returns.
		sortVideos(c.Videos)
		if index < 0 || index >= len(c.Videos) {
			return qerrors.VideoNotFoundError
		}
		fn(&c.Videos[index])
		video = c.Videos[index]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func sortVideos(videos []models.Video) {
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].Order < videos[j].Order
	})
}
