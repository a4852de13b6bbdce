package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lyricverse-api/internal/models"
)

// MockSongRepository is a mock implementation of SongRepository
type MockSongRepository struct {
	mu          sync.Mutex
	Songs       map[string]*models.Song
	InsertError error
	ListError   error
	ListCalls   int
}

func NewMockSongRepository() *MockSongRepository {
	return &MockSongRepository{Songs: make(map[string]*models.Song)}
}

func (m *MockSongRepository) Create(ctx context.Context, song *models.Song) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Songs[song.ID] = song
	return nil
}

func (m *MockSongRepository) GetByID(ctx context.Context, id string) (*models.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	song, ok := m.Songs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *song
	return &copied, nil
}

func (m *MockSongRepository) Update(ctx context.Context, song *models.Song) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Songs[song.ID]; !ok {
		return models.ErrNotFound
	}
	m.Songs[song.ID] = song
	return nil
}

func (m *MockSongRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Songs[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.Songs, id)
	return nil
}

func (m *MockSongRepository) List(ctx context.Context, limit, offset int) ([]*models.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListError != nil {
		return nil, m.ListError
	}
	songs := make([]*models.Song, 0, len(m.Songs))
	for _, song := range m.Songs {
		songs = append(songs, song)
	}
	sort.Slice(songs, func(i, j int) bool { return songs[i].CreatedAt.After(songs[j].CreatedAt) })
	return paginate(songs, limit, offset), nil
}

func (m *MockSongRepository) SearchByTitlePrefix(ctx context.Context, prefix string, limit int) ([]*models.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matches := make([]*models.Song, 0)
	for _, song := range m.Songs {
		if strings.HasPrefix(strings.ToLower(song.Title), strings.ToLower(prefix)) {
			matches = append(matches, song)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Title < matches[j].Title })
	return paginate(matches, limit, 0), nil
}

func (m *MockSongRepository) IncrementViews(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	song, ok := m.Songs[id]
	if !ok {
		return models.ErrNotFound
	}
	song.Views++
	return nil
}

func (m *MockSongRepository) CountByArtist(ctx context.Context, artistName string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, song := range m.Songs {
		if song.Artist == artistName {
			count++
		}
	}
	return count, nil
}

func (m *MockSongRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Songs), nil
}

// MockArtistRepository is a mock implementation of ArtistRepository
type MockArtistRepository struct {
	mu          sync.Mutex
	Artists     map[string]*models.Artist
	Songs       *MockSongRepository // for computed song counts
	InsertError error
}

func NewMockArtistRepository() *MockArtistRepository {
	return &MockArtistRepository{Artists: make(map[string]*models.Artist)}
}

func (m *MockArtistRepository) Create(ctx context.Context, artist *models.Artist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Artists[artist.ID] = artist
	return nil
}

func (m *MockArtistRepository) GetByID(ctx context.Context, id string) (*models.Artist, error) {
	m.mu.Lock()
	artist, ok := m.Artists[id]
	m.mu.Unlock()
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *artist
	if m.Songs != nil {
		count, _ := m.Songs.CountByArtist(ctx, artist.Name)
		copied.SongCount = count
	}
	return &copied, nil
}

func (m *MockArtistRepository) Update(ctx context.Context, artist *models.Artist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Artists[artist.ID]; !ok {
		return models.ErrNotFound
	}
	m.Artists[artist.ID] = artist
	return nil
}

func (m *MockArtistRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Artists[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.Artists, id)
	return nil
}

func (m *MockArtistRepository) List(ctx context.Context, limit, offset int) ([]*models.Artist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	artists := make([]*models.Artist, 0, len(m.Artists))
	for _, artist := range m.Artists {
		artists = append(artists, artist)
	}
	sort.Slice(artists, func(i, j int) bool { return artists[i].Name < artists[j].Name })
	return paginate(artists, limit, offset), nil
}

func (m *MockArtistRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Artists), nil
}

// MockSubmissionRepository is a mock implementation of
// SubmissionRepository. Approve mirrors the real transaction: the
// compare-and-set, song insert and contribution credit happen under
// one lock, and an injected TxError leaves every record untouched.
type MockSubmissionRepository struct {
	mu          sync.Mutex
	Submissions map[string]*models.Submission
	SongRepo    *MockSongRepository
	UserRepo    *MockUserRepository
	InsertError error
	TxError     error
	ListCalls   int
}

func NewMockSubmissionRepository(songs *MockSongRepository, users *MockUserRepository) *MockSubmissionRepository {
	return &MockSubmissionRepository{
		Submissions: make(map[string]*models.Submission),
		SongRepo:    songs,
		UserRepo:    users,
	}
}

func (m *MockSubmissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Submissions[sub.ID] = sub
	return nil
}

func (m *MockSubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.Submissions[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *sub
	return &copied, nil
}

func (m *MockSubmissionRepository) ListByStatus(ctx context.Context, status models.SubmissionStatus, limit, offset int) ([]*models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	subs := make([]*models.Submission, 0)
	for _, sub := range m.Submissions {
		if sub.Status == status {
			subs = append(subs, sub)
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].CreatedAt.Before(subs[j].CreatedAt) })
	return paginate(subs, limit, offset), nil
}

func (m *MockSubmissionRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Submissions[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.Submissions, id)
	return nil
}

func (m *MockSubmissionRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Submissions), nil
}

func (m *MockSubmissionRepository) Approve(ctx context.Context, submissionID string, song *models.Song, admin models.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.Submissions[submissionID]
	if !ok {
		return models.ErrNotFound
	}
	if sub.Status != models.SubmissionStatusPending {
		return models.ErrInvalidState
	}
	if m.TxError != nil {
		// whole transaction rolls back, nothing changes
		return m.TxError
	}

	sub.Status = models.SubmissionStatusApproved
	sub.UpdatedAt = time.Now()
	if m.SongRepo != nil {
		m.SongRepo.Create(ctx, song)
	}
	if m.UserRepo != nil {
		m.UserRepo.AddContribution(ctx, admin, song.ID)
	}
	return nil
}

func (m *MockSubmissionRepository) Reject(ctx context.Context, submissionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.Submissions[submissionID]
	if !ok {
		return models.ErrNotFound
	}
	if sub.Status != models.SubmissionStatusPending {
		return models.ErrInvalidState
	}
	if m.TxError != nil {
		return m.TxError
	}

	sub.Status = models.SubmissionStatusRejected
	sub.UpdatedAt = time.Now()
	return nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mu        sync.Mutex
	Users     map[string]*models.AdminUser
	UpsertErr error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*models.AdminUser)}
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.Users[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *models.AdminUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	if existing, ok := m.Users[user.Email]; ok {
		existing.Name = user.Name
		existing.ImageURL = user.ImageURL
		existing.UpdatedAt = time.Now()
		return nil
	}
	m.Users[user.Email] = user
	return nil
}

func (m *MockUserRepository) AddContribution(ctx context.Context, admin models.Identity, songID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	user, ok := m.Users[admin.Email]
	if !ok {
		user = &models.AdminUser{
			Email:     admin.Email,
			Name:      admin.Name,
			ImageURL:  admin.ImageURL,
			CreatedAt: now,
		}
		m.Users[admin.Email] = user
	}
	user.Name = admin.Name
	user.ImageURL = admin.ImageURL
	// set-union: never accumulate duplicates
	for _, id := range user.Contributions {
		if id == songID {
			user.LastContribution = &now
			return nil
		}
	}
	user.Contributions = append(user.Contributions, songID)
	user.LastContribution = &now
	user.UpdatedAt = now
	return nil
}

func (m *MockUserRepository) Leaderboard(ctx context.Context, limit int) ([]*models.ContributorRank, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ranks := make([]*models.ContributorRank, 0)
	for _, user := range m.Users {
		if len(user.Contributions) == 0 {
			continue
		}
		ranks = append(ranks, &models.ContributorRank{
			Email:             user.Email,
			Name:              user.Name,
			ImageURL:          user.ImageURL,
			ContributionCount: len(user.Contributions),
			LastContribution:  user.LastContribution,
		})
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i].ContributionCount > ranks[j].ContributionCount })
	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks, nil
}

// paginate mirrors LIMIT/OFFSET, including LIMIT 0 returning no rows
func paginate[T any](items []T, limit, offset int) []T {
	if limit <= 0 || offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
