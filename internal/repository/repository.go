package repository

import (
	"time"

	"github.com/golang/glog"

	"sarvasva/internal/models"
	"sarvasva/internal/store"
	"sarvasva/internal/summarizer"
	"sarvasva/internal/uploads"
)

// Repository is the repository used by the routers. It is set by the server on startup.
var Repository *JSONRepository

type Options struct {
	Store      *store.Store
	Uploads    *uploads.Storage
	Summarizer summarizer.Summarizer
	// CourseCompletionAward is the number of credits granted per completed course.
	CourseCompletionAward int
	// DefaultGuestID is used by operations that are handed an empty guest ID.
	DefaultGuestID string
	// Now defaults to time.Now.
	Now func() time.Time
}

// JSONRepository implements every entity operation on top of the flat JSON collection store.
type JSONRepository struct {
	store      *store.Store
	uploads    *uploads.Storage
	summarizer summarizer.Summarizer

	award          int
	defaultGuestID string
	now            func() time.Time

	users       *collection[models.User]
	courses     *collection[models.Course]
	chats       *collection[models.Chat]
	documents   *collection[models.Document]
	assessments *collection[models.Assessment]
	liveClasses *collection[models.LiveClass]
	credits     *collection[models.CreditTransaction]
}

func NewJSONRepository(opts Options) *JSONRepository {
	if opts.Summarizer == nil {
		opts.Summarizer = summarizer.Stub{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DefaultGuestID == "" {
		opts.DefaultGuestID = models.RoleGuest
	}

	s := opts.Store
	jr := &JSONRepository{
		store:          s,
		uploads:        opts.Uploads,
		summarizer:     opts.Summarizer,
		award:          opts.CourseCompletionAward,
		defaultGuestID: opts.DefaultGuestID,
		now:            opts.Now,

		users:       newCollection(s, store.UsersCollection, func(u *models.User) string { return u.ID }),
		courses:     newCollection(s, store.CoursesCollection, func(c *models.Course) string { return c.ID }),
		chats:       newCollection(s, store.ChatsCollection, func(c *models.Chat) string { return c.ID }),
		documents:   newCollection(s, store.DocumentsCollection, func(d *models.Document) string { return d.ID }),
		assessments: newCollection(s, store.AssessmentsCollection, func(a *models.Assessment) string { return a.ID }),
		liveClasses: newCollection(s, store.LiveClassesCollection, func(lc *models.LiveClass) string { return lc.ID }),
		credits:     newCollection(s, store.CreditsCollection, func(t *models.CreditTransaction) string { return t.ID }),
	}

	glog.Infof("✅ Using JSON repository in %s", s.Dir())
	return jr
}

func (jr *JSONRepository) guestID(id string) string {
	if id == "" {
		return jr.defaultGuestID
	}
	return id
}
