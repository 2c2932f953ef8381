package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/socialgrdn2024/socialgrdn-v1-Beta/internal/domain"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Service holds DB and Redis for user operations. Rdb may be nil; role
// lookups then skip the cache. Authentication itself lives with the external
// identity provider; this service only stores and serves profile rows.
type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

const roleCachePrefix = "userrole:"
const roleCacheTTL = 10 * time.Minute

// RegisterInput matches the POST /api/users/register body.
type RegisterInput struct {
	Email        string `json:"email"`
	FirstName    string `json:"firstname"`
	LastName     string `json:"lastname"`
	Username     string `json:"username"`
	Profession   string `json:"profession"`
	PhoneNumber  string `json:"phoneNumber"`
	AddressLine1 string `json:"userAddress"`
	City         string `json:"userCity"`
	Province     string `json:"userProvince"`
	PostalCode   string `json:"userPostalCode"`
}

// Register inserts a new profile with the default member role and active
// status, same fixed '1'/'1' pair the Express insert hardcoded.
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	profile := &domain.UserProfile{
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     in.Username,
		Profession:   in.Profession,
		PhoneNumber:  in.PhoneNumber,
		AddressLine1: in.AddressLine1,
		City:         in.City,
		Province:     in.Province,
		PostalCode:   in.PostalCode,
		Role:         "1",
		Status:       "1",
	}
	if err := s.DB.WithContext(ctx).Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// Exists reports whether a profile with the email exists (check-user probe).
func (s *Service) Exists(ctx context.Context, email string) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&domain.UserProfile{}).
		Where("email = ?", email).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ProfileByEmail returns the full profile row for an email.
func (s *Service) ProfileByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	var u domain.UserProfile
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ProfileByID returns the full profile row for a user id.
func (s *Service) ProfileByID(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	var u domain.UserProfile
	err := s.DB.WithContext(ctx).Where("userID = ?", userID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfileInput matches the PATCH /api/editProfile body (column-named
// keys, unlike the registration body, same as the Express routes).
type UpdateProfileInput struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	AddressLine1 string `json:"address_line1"`
	City         string `json:"city"`
	Province     string `json:"province"`
	PostalCode   string `json:"postal_code"`
	PhoneNumber  string `json:"phone_number"`
	Profession   string `json:"profession"`
}

// UpdateProfile rewrites the mutable profile columns. Zero affected rows
// means the user does not exist.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) error {
	res := s.DB.WithContext(ctx).
		Model(&domain.UserProfile{}).
		Where("userID = ?", userID).
		Updates(map[string]interface{}{
			"first_name":    in.FirstName,
			"last_name":     in.LastName,
			"username":      in.Username,
			"address_line1": in.AddressLine1,
			"city":          in.City,
			"province":      in.Province,
			"postal_code":   in.PostalCode,
			"phone_number":  in.PhoneNumber,
			"profession":    in.Profession,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Role returns the numeric role for an email. The value is cached in Redis
// because the frontend asks for it on nearly every page load and the row
// changes only when a moderator intervenes.
func (s *Service) Role(ctx context.Context, email string) (int, error) {
	if s.Rdb != nil {
		if v, err := s.Rdb.Get(ctx, roleCachePrefix+email).Result(); err == nil {
			if role, convErr := strconv.Atoi(v); convErr == nil {
				return role, nil
			}
		}
	}

	var u domain.UserProfile
	err := s.DB.WithContext(ctx).Select("role").Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}
	role, err := strconv.Atoi(u.Role)
	if err != nil {
		return 0, fmt.Errorf("malformed role %q for %s", u.Role, email)
	}

	if s.Rdb != nil {
		s.Rdb.Set(ctx, roleCachePrefix+email, u.Role, roleCacheTTL)
	}
	return role, nil
}

// UpdateStatus blocks or unblocks a user and drops the stale role-cache
// entry for them.
func (s *Service) UpdateStatus(ctx context.Context, userID int64, status string) error {
	var u domain.UserProfile
	err := s.DB.WithContext(ctx).Select("email").Where("userID = ?", userID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	res := s.DB.WithContext(ctx).
		Model(&domain.UserProfile{}).
		Where("userID = ?", userID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}

	if s.Rdb != nil {
		s.Rdb.Del(ctx, roleCachePrefix+u.Email)
	}
	return nil
}

// Summary is one row of GET /api/getAllUsers, the moderator dashboard shape
// with all the display strings pre-composed (GetAllUsersAPI.js parity).
type Summary struct {
	UserID           int64  `json:"userID"`
	Username         string `json:"username"`
	Status           string `json:"status"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phone_number"`
	Profession       string `json:"profession"`
	FullAddress      string `json:"full_address"`
	Name             string `json:"name"`
	CreatedAt        string `json:"createdAt"`
	ActiveProperties string `json:"active_properties"`
	Location         string `json:"location"`
	RenterOrOwner    string `json:"renterOrOwner"`
}

// ListAll returns every member and moderator with their active-listing count
// and owner flag. Counting and string composition happen here rather than in
// SQL so the query stays portable across dialects.
func (s *Service) ListAll(ctx context.Context) ([]Summary, error) {
	var users []domain.UserProfile
	if err := s.DB.WithContext(ctx).
		Where("role IN ?", []string{"1", "2"}).
		Order("userID").
		Find(&users).Error; err != nil {
		return nil, err
	}

	activeCounts, owners, err := s.listingStats(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(users))
	for _, u := range users {
		renterOrOwner := "Unknown"
		if u.Role == "1" {
			renterOrOwner = "Renter"
			if owners[u.UserID] {
				renterOrOwner = "Renter & Owner"
			}
		}
		out = append(out, Summary{
			UserID:           u.UserID,
			Username:         u.Username,
			Status:           u.Status,
			Email:            u.Email,
			PhoneNumber:      u.PhoneNumber,
			Profession:       u.Profession,
			FullAddress:      fmt.Sprintf("%s %s %s %s", u.AddressLine1, u.City, u.Province, u.PostalCode),
			Name:             fmt.Sprintf("%s %s", u.FirstName, u.LastName),
			CreatedAt:        u.CreatedAt.Format("January 2006"),
			ActiveProperties: fmt.Sprintf("%d active properties", activeCounts[u.UserID]),
			Location:         fmt.Sprintf("%s, %s", u.City, u.Province),
			RenterOrOwner:    renterOrOwner,
		})
	}
	return out, nil
}

// listingStats returns the active-listing count per owner and the set of
// users owning at least one listing of any status.
func (s *Service) listingStats(ctx context.Context) (map[int64]int64, map[int64]bool, error) {
	var listings []domain.PropertyListing
	if err := s.DB.WithContext(ctx).
		Select("userID", "status").
		Find(&listings).Error; err != nil {
		return nil, nil, err
	}
	counts := make(map[int64]int64)
	owners := make(map[int64]bool)
	for _, l := range listings {
		owners[l.UserID] = true
		if l.Status == "1" {
			counts[l.UserID]++
		}
	}
	return counts, owners, nil
}
