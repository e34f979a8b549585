package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"

	"coursetrack-backend-go/internal/models"
)

// MemoryStore keeps every collection in-process. It satisfies the same contracts as the
// Postgres repositories, including the uniqueness rules, and is meant for local runs and tests.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[string]models.User
	emails       map[string]string
	courses      map[string]models.Course
	courseOrder  []string
	videos       map[string][]models.Video
	progress     map[progressKey]models.ProgressRecord
	certificates map[certificateKey]models.Certificate
}

type progressKey struct {
	userID, courseID, videoID string
}

type certificateKey struct {
	userID, courseID string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]models.User),
		emails:       make(map[string]string),
		courses:      make(map[string]models.Course),
		videos:       make(map[string][]models.Video),
		progress:     make(map[progressKey]models.ProgressRecord),
		certificates: make(map[certificateKey]models.Certificate),
	}
}

func (m *MemoryStore) PingContext(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryStore) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	email := strings.ToLower(user.Email)
	if _, taken := m.emails[email]; taken {
		return ErrDuplicate
	}
	if _, taken := m.users[user.ID]; taken {
		return ErrDuplicate
	}
	m.users[user.ID] = *user
	m.emails[email] = user.ID
	return nil
}

func (m *MemoryStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.emails[strings.ToLower(email)]
	return ok, nil
}

func (m *MemoryStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.emails[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	user := m.users[id]
	return &user, nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	user.PasswordHash = ""
	return &user, nil
}

// DeleteUser exists for tests that need a token whose user has gone away.
func (m *MemoryStore) DeleteUser(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[id]; ok {
		delete(m.emails, strings.ToLower(user.Email))
		delete(m.users, id)
	}
}

func (m *MemoryStore) ListCourses(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	search := strings.ToLower(filter.Search)
	language := strings.ToLower(filter.Language)
	courses := []models.Course{}
	for _, id := range m.courseOrder {
		course := m.courses[id]
		if search != "" && !strings.Contains(strings.ToLower(course.Name), search) {
			continue
		}
		if language != "" && course.Language != language {
			continue
		}
		courses = append(courses, course)
		if len(courses) == ListLimit {
			break
		}
	}
	return courses, nil
}

func (m *MemoryStore) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	course, ok := m.courses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &course, nil
}

func (m *MemoryStore) ListVideos(ctx context.Context, courseID string) ([]models.Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	videos := append([]models.Video{}, m.videos[courseID]...)
	sort.Slice(videos, func(i, j int) bool { return videos[i].Order < videos[j].Order })
	return videos, nil
}

func (m *MemoryStore) CreateCourse(ctx context.Context, course *models.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.courses[course.ID]; exists {
		return ErrDuplicate
	}
	m.courses[course.ID] = *course
	m.courseOrder = append(m.courseOrder, course.ID)
	return nil
}

func (m *MemoryStore) CreateVideo(ctx context.Context, video *models.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.videos[video.CourseID] {
		if existing.ID == video.ID || existing.Order == video.Order {
			return ErrDuplicate
		}
	}
	m.videos[video.CourseID] = append(m.videos[video.CourseID], *video)
	return nil
}

func (m *MemoryStore) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.courses = make(map[string]models.Course)
	m.courseOrder = nil
	m.videos = make(map[string][]models.Video)
	return nil
}

func (m *MemoryStore) Upsert(ctx context.Context, record *models.ProgressRecord) (*models.ProgressRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := progressKey{record.UserID, record.CourseID, record.VideoID}
	stored := *record
	if existing, ok := m.progress[key]; ok {
		stored.ID = existing.ID
	}
	m.progress[key] = stored
	return &stored, nil
}

func (m *MemoryStore) ListByUserCourse(ctx context.Context, userID, courseID string) ([]models.ProgressRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := []models.ProgressRecord{}
	for key, record := range m.progress {
		if key.userID == userID && key.courseID == courseID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (m *MemoryStore) Find(ctx context.Context, userID, courseID string) (*models.Certificate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cert, ok := m.certificates[certificateKey{userID, courseID}]
	if !ok {
		return nil, ErrNotFound
	}
	return &cert, nil
}

func (m *MemoryStore) InsertIfAbsent(ctx context.Context, cert *models.Certificate) (*models.Certificate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := certificateKey{cert.UserID, cert.CourseID}
	if existing, ok := m.certificates[key]; ok {
		return &existing, nil
	}
	m.certificates[key] = *cert
	stored := *cert
	return &stored, nil
}
