package service

import (
	"context"
	"errors"

	"github.com/damascus-edu/training-center-bot/internal/adapter/googledrive"
	"github.com/damascus-edu/training-center-bot/internal/adapter/metagraph"
	"github.com/damascus-edu/training-center-bot/internal/model"
)

// Память вместо MongoDB. Каждый фейк реализует соответствующий
// интерфейс из stores.go.

var errStoreDown = errors.New("store unavailable")

type fakeCourseStore struct {
	courses map[string]*model.Course
	fail    bool
}

func newFakeCourseStore(courses ...*model.Course) *fakeCourseStore {
	s := &fakeCourseStore{courses: map[string]*model.Course{}}
	for _, c := range courses {
		s.courses[c.ID] = c
	}
	return s
}

func (s *fakeCourseStore) GetByID(_ context.Context, courseID string) (*model.Course, error) {
	if s.fail {
		return nil, errStoreDown
	}
	return s.courses[courseID], nil
}

func (s *fakeCourseStore) GetAll(_ context.Context) ([]*model.Course, error) {
	if s.fail {
		return nil, errStoreDown
	}
	var out []*model.Course
	for _, c := range s.courses {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeCourseStore) GetAvailable(ctx context.Context) ([]*model.Course, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []*model.Course
	for _, c := range all {
		if c.IsAvailable() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCourseStore) Save(_ context.Context, course *model.Course) error {
	if s.fail {
		return errStoreDown
	}
	s.courses[course.ID] = course
	return nil
}

func (s *fakeCourseStore) Delete(_ context.Context, courseID string) (bool, error) {
	if _, ok := s.courses[courseID]; !ok {
		return false, nil
	}
	delete(s.courses, courseID)
	return true, nil
}

type fakeStudentStore struct {
	students map[string]*model.Student
}

func newFakeStudentStore(students ...*model.Student) *fakeStudentStore {
	s := &fakeStudentStore{students: map[string]*model.Student{}}
	for _, st := range students {
		s.students[st.ID] = st
	}
	return s
}

func (s *fakeStudentStore) GetByID(_ context.Context, studentID string) (*model.Student, error) {
	return s.students[studentID], nil
}

func (s *fakeStudentStore) GetByTelegramID(_ context.Context, telegramID int64) (*model.Student, error) {
	for _, st := range s.students {
		if st.TelegramID == telegramID {
			return st, nil
		}
	}
	return nil, nil
}

func (s *fakeStudentStore) GetAll(_ context.Context) ([]*model.Student, error) {
	var out []*model.Student
	for _, st := range s.students {
		out = append(out, st)
	}
	return out, nil
}

func (s *fakeStudentStore) Save(_ context.Context, student *model.Student) error {
	s.students[student.ID] = student
	return nil
}

type fakeRegistrationStore struct {
	registrations map[string]*model.Registration
}

func newFakeRegistrationStore(regs ...*model.Registration) *fakeRegistrationStore {
	s := &fakeRegistrationStore{registrations: map[string]*model.Registration{}}
	for _, r := range regs {
		s.registrations[r.ID] = r
	}
	return s
}

func (s *fakeRegistrationStore) GetByID(_ context.Context, registrationID string) (*model.Registration, error) {
	return s.registrations[registrationID], nil
}

func (s *fakeRegistrationStore) GetByStudentAndCourse(_ context.Context, studentID, courseID string) (*model.Registration, error) {
	for _, r := range s.registrations {
		if r.StudentID == studentID && r.CourseID == courseID {
			return r, nil
		}
	}
	return nil, nil
}

func (s *fakeRegistrationStore) GetByStudent(_ context.Context, studentID string) ([]*model.Registration, error) {
	var out []*model.Registration
	for _, r := range s.registrations {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeRegistrationStore) GetByCourse(_ context.Context, courseID string) ([]*model.Registration, error) {
	var out []*model.Registration
	for _, r := range s.registrations {
		if r.CourseID == courseID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeRegistrationStore) GetByStatus(_ context.Context, status model.RegistrationStatus) ([]*model.Registration, error) {
	var out []*model.Registration
	for _, r := range s.registrations {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeRegistrationStore) CountByCourse(_ context.Context, courseID string) (int64, error) {
	var count int64
	for _, r := range s.registrations {
		if r.CourseID == courseID && r.Status != model.RegistrationStatusRejected && r.Status != model.RegistrationStatusCancelled {
			count++
		}
	}
	return count, nil
}

func (s *fakeRegistrationStore) Save(_ context.Context, registration *model.Registration) error {
	s.registrations[registration.ID] = registration
	return nil
}

type fakePaymentStore struct {
	payments []*model.PaymentRecord
}

func (s *fakePaymentStore) GetByRegistration(_ context.Context, registrationID string) ([]*model.PaymentRecord, error) {
	var out []*model.PaymentRecord
	for _, p := range s.payments {
		if p.RegistrationID == registrationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePaymentStore) TotalPaid(_ context.Context, registrationID string) (float64, error) {
	var total float64
	for _, p := range s.payments {
		if p.RegistrationID == registrationID {
			total += p.Amount
		}
	}
	return total, nil
}

func (s *fakePaymentStore) Save(_ context.Context, payment *model.PaymentRecord) error {
	s.payments = append(s.payments, payment)
	return nil
}

type fakePreferencesStore struct {
	prefs      map[int64]*model.UserPreferences
	mutedCalls int
}

func newFakePreferencesStore() *fakePreferencesStore {
	return &fakePreferencesStore{prefs: map[int64]*model.UserPreferences{}}
}

func (s *fakePreferencesStore) GetByTelegramID(_ context.Context, telegramID int64) (*model.UserPreferences, error) {
	return s.prefs[telegramID], nil
}

func (s *fakePreferencesStore) Save(_ context.Context, prefs *model.UserPreferences) error {
	s.prefs[prefs.TelegramID] = prefs
	return nil
}

func (s *fakePreferencesStore) SetLanguage(ctx context.Context, telegramID int64, language model.Language) error {
	prefs := s.prefs[telegramID]
	if prefs == nil {
		prefs = model.NewUserPreferences(telegramID)
	}
	prefs.Language = language
	return s.Save(ctx, prefs)
}

func (s *fakePreferencesStore) Muted(_ context.Context) ([]int64, error) {
	s.mutedCalls++
	var out []int64
	for _, p := range s.prefs {
		if !p.NotificationsEnabled {
			out = append(out, p.TelegramID)
		}
	}
	return out, nil
}

type fakePostStore struct {
	posts map[string]*model.ScheduledPost
	fail  bool
}

func newFakePostStore(posts ...*model.ScheduledPost) *fakePostStore {
	s := &fakePostStore{posts: map[string]*model.ScheduledPost{}}
	for _, p := range posts {
		s.posts[p.ID] = p
	}
	return s
}

func (s *fakePostStore) GetPending(_ context.Context) ([]*model.ScheduledPost, error) {
	if s.fail {
		return nil, errStoreDown
	}
	var out []*model.ScheduledPost
	for _, p := range s.posts {
		if p.Status == model.PostStatusPending {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePostStore) Save(_ context.Context, post *model.ScheduledPost) error {
	if s.fail {
		return errStoreDown
	}
	s.posts[post.ID] = post
	return nil
}

type fakePostSource struct {
	posts      []*model.ScheduledPost
	fail       bool
	published  []int
	errorNotes map[int]string
}

func newFakePostSource(posts ...*model.ScheduledPost) *fakePostSource {
	return &fakePostSource{posts: posts, errorNotes: map[int]string{}}
}

func (s *fakePostSource) GetScheduledPosts(_ context.Context) ([]*model.ScheduledPost, error) {
	if s.fail {
		return nil, errStoreDown
	}
	return s.posts, nil
}

func (s *fakePostSource) MarkPublished(_ context.Context, rowIndex int) error {
	s.published = append(s.published, rowIndex)
	return nil
}

func (s *fakePostSource) AddErrorNote(_ context.Context, rowIndex int, message string) error {
	s.errorNotes[rowIndex] = message
	return nil
}

type fakePublisher struct {
	facebookFail  bool
	instagramFail bool
	facebookCalls int
	instagramCall int
}

func (p *fakePublisher) PublishToFacebook(_ context.Context, content, imageURL string) *metagraph.PublishResult {
	p.facebookCalls++
	if p.facebookFail {
		return &metagraph.PublishResult{ErrorMessage: "facebook api error"}
	}
	return &metagraph.PublishResult{Success: true, PostID: "fb_1"}
}

func (p *fakePublisher) PublishToInstagram(_ context.Context, imageURL, caption string) *metagraph.PublishResult {
	p.instagramCall++
	if p.instagramFail {
		return &metagraph.PublishResult{ErrorMessage: "instagram api error"}
	}
	return &metagraph.PublishResult{Success: true, PostID: "ig_1"}
}

type fakeDrive struct {
	uploads    []string
	folders    []string
	files      map[string][]*googledrive.Material
	uploadFail bool
}

func newFakeDrive() *fakeDrive {
	return &fakeDrive{files: map[string][]*googledrive.Material{}}
}

func (d *fakeDrive) UploadBytes(_ context.Context, data []byte, fileName, mimeType, folderID string) (string, error) {
	if d.uploadFail {
		return "", errStoreDown
	}
	d.uploads = append(d.uploads, fileName)
	link := "https://drive.example.com/" + fileName
	d.files[folderID] = append(d.files[folderID], &googledrive.Material{Name: fileName, Link: link})
	return link, nil
}

func (d *fakeDrive) ListFiles(_ context.Context, folderID string) ([]*googledrive.Material, error) {
	return d.files[folderID], nil
}

func (d *fakeDrive) CreateFolder(_ context.Context, name string) (string, error) {
	d.folders = append(d.folders, name)
	return "folder_" + name, nil
}
