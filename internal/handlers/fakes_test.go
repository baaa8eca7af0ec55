package handlers

import (
	"sort"
	"sync"
	"time"

	"github.com/anonto42/skillswap/backend/internal/models"
	"gorm.io/gorm"
)

// fakeUserRepo is an in-memory UserRepository for handler tests
type fakeUserRepo struct {
	mu    sync.Mutex
	seq   uint
	users map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User)}
}

func (f *fakeUserRepo) addUser(user models.User) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	user.ID = f.seq
	f.users[user.ID] = &user
	return &user
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	user.ID = f.seq
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.FirebaseUID == firebaseUID {
			cp := *user
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateUser(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) SearchUsers(query string, page, perPage int) ([]models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) ListUsers(page, perPage int) ([]models.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]models.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, int64(len(users)), nil
}

func (f *fakeUserRepo) SetBanned(id uint, banned bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.IsBanned = banned
	return nil
}

// fakeSwapRepo is an in-memory SwapRepository. Its conditional writes hold the
// lock across check and mutation, mirroring the guarded UPDATE/DELETE the
// Postgres implementation relies on.
type fakeSwapRepo struct {
	mu    sync.Mutex
	seq   uint
	clock time.Time
	swaps map[uint]*models.SwapRequest
}

func newFakeSwapRepo() *fakeSwapRepo {
	return &fakeSwapRepo{
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		swaps: make(map[uint]*models.SwapRequest),
	}
}

func (f *fakeSwapRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeSwapRepo) CreateSwapRequest(req *models.SwapRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	req.ID = f.seq
	now := f.tick()
	req.CreatedAt = now
	req.UpdatedAt = now
	cp := *req
	f.swaps[req.ID] = &cp
	return nil
}

func (f *fakeSwapRepo) GetSwapRequestByID(id uint) (*models.SwapRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	swap, ok := f.swaps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *swap
	return &cp, nil
}

func (f *fakeSwapRepo) GetUserSwaps(userID uint) (*models.UserSwaps, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	swaps := &models.UserSwaps{
		Sent:     []models.SwapRequest{},
		Received: []models.SwapRequest{},
	}
	for _, swap := range f.swaps {
		if swap.RequesterID == userID {
			swaps.Sent = append(swaps.Sent, *swap)
		}
		if swap.ProviderID == userID {
			swaps.Received = append(swaps.Received, *swap)
		}
	}
	newestFirst := func(list []models.SwapRequest) {
		sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	}
	newestFirst(swaps.Sent)
	newestFirst(swaps.Received)
	return swaps, nil
}

func (f *fakeSwapRepo) UpdateStatus(swapID, providerID uint, status string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	swap, ok := f.swaps[swapID]
	if !ok || swap.ProviderID != providerID || swap.Status != models.SwapStatusPending {
		return false, nil
	}
	swap.Status = status
	swap.UpdatedAt = f.tick()
	return true, nil
}

func (f *fakeSwapRepo) Delete(swapID, requesterID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	swap, ok := f.swaps[swapID]
	if !ok || swap.RequesterID != requesterID || swap.Status != models.SwapStatusPending {
		return false, nil
	}
	delete(f.swaps, swapID)
	return true, nil
}

// fakeRatingRepo is an in-memory RatingRepository with the same atomic
// check-and-insert behavior the unique index gives the real one.
type fakeRatingRepo struct {
	mu      sync.Mutex
	seq     uint
	ratings map[uint]*models.Rating
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: make(map[uint]*models.Rating)}
}

func (f *fakeRatingRepo) CreateRating(rating *models.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.ratings {
		if existing.SwapRequestID == rating.SwapRequestID && existing.RaterID == rating.RaterID {
			return gorm.ErrDuplicatedKey
		}
	}
	f.seq++
	rating.ID = f.seq
	rating.CreatedAt = time.Now()
	cp := *rating
	f.ratings[rating.ID] = &cp
	return nil
}

func (f *fakeRatingRepo) ExistsForSwapAndRater(swapRequestID, raterID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rating := range f.ratings {
		if rating.SwapRequestID == swapRequestID && rating.RaterID == raterID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRatingRepo) GetUserRatings(ratedID uint) ([]models.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ratings := []models.Rating{}
	for _, rating := range f.ratings {
		if rating.RatedID == ratedID {
			ratings = append(ratings, *rating)
		}
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i].ID > ratings[j].ID })
	return ratings, nil
}

func (f *fakeRatingRepo) GetReputation(userID uint) (*models.ReputationSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	summary := &models.ReputationSummary{}
	total := 0
	for _, rating := range f.ratings {
		if rating.RatedID == userID {
			summary.Count++
			total += rating.Score
		}
	}
	if summary.Count > 0 {
		summary.AverageScore = float64(total) / float64(summary.Count)
	}
	return summary, nil
}
