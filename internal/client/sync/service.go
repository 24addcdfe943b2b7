// Package sync keeps a local view of one user's collections and reviews
// consistent with the remote document store. It owns the in-memory caches,
// mirrors mutations to the store and maintains the denormalized link between
// a review and its owning collection.
package sync

import (
	"context"
	"fmt"
	"sort"
	gosync "sync"

	"github.com/google/uuid"

	"github.com/cinescribe/cinescribe/internal/client/remote"
	"github.com/cinescribe/cinescribe/internal/common"
	"github.com/cinescribe/cinescribe/internal/logging"
	"github.com/cinescribe/cinescribe/internal/models"
)

// Service is the synchronization layer for a single active session. All cache
// access is guarded by mu; remote calls run outside the lock.
type Service struct {
	store remote.Store
	log   logging.Logger

	mu          gosync.Mutex
	session     *models.User
	collections []models.Collection
	reviews     []models.Review
}

func NewService(store remote.Store, log logging.Logger) *Service {
	return &Service{store: store, log: log}
}

func userPath(username string) string {
	return "users/" + username
}

func collectionsPath(userID uuid.UUID) string {
	return "collections/" + userID.String()
}

func collectionPath(userID, collID uuid.UUID) string {
	return collectionsPath(userID) + "/" + collID.String()
}

func reviewsPath(userID uuid.UUID) string {
	return "reviews/" + userID.String()
}

func reviewPath(userID, reviewID uuid.UUID) string {
	return reviewsPath(userID) + "/" + reviewID.String()
}

// Register creates the remote user record and opens a session for it. If the
// username is already taken the call is a silent no-op: the existing record
// is left untouched and the session is unchanged.
func (s *Service) Register(ctx context.Context, username, password string) error {
	existing, err := s.store.ReadOnce(ctx, userPath(username))
	if err != nil {
		return err
	}
	if existing != nil {
		s.log.Info(ctx, "username already registered", "username", username)
		return nil
	}

	user := models.NewUser(username, password)
	if err := s.store.Write(ctx, userPath(username), user.Value()); err != nil {
		return err
	}

	s.mu.Lock()
	s.session = &user
	s.collections = nil
	s.reviews = nil
	s.mu.Unlock()

	s.log.Info(ctx, "user registered", "username", username, "user_id", user.ID)
	return nil
}

// Authenticate looks up the remote record by username and, on success,
// replaces the current session with the fetched identity. On not-found or a
// password mismatch the session is left unchanged.
func (s *Service) Authenticate(ctx context.Context, username, password string) error {
	value, err := s.store.ReadOnce(ctx, userPath(username))
	if err != nil {
		return err
	}
	if value == nil {
		return fmt.Errorf("%w: %s", common.ErrUserNotFound, username)
	}

	user, err := models.UserFromValue(username, value)
	if err != nil {
		return err
	}
	if user.Password != password {
		return common.ErrInvalidCredentials
	}

	s.mu.Lock()
	s.session = &user
	s.collections = nil
	s.reviews = nil
	s.mu.Unlock()

	s.log.Info(ctx, "user authenticated", "username", username, "user_id", user.ID)
	return nil
}

// Session returns the currently signed-in user.
func (s *Service) Session() (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return models.User{}, common.ErrNoSession
	}
	return *s.session, nil
}

// CreateCollection writes a fresh empty collection under the session user and
// adds it to the cache. The cache is not mutated when the write fails.
func (s *Service) CreateCollection(ctx context.Context, title string) (models.Collection, error) {
	user, err := s.Session()
	if err != nil {
		return models.Collection{}, err
	}

	c := models.NewCollection(title)
	if err := s.store.Write(ctx, collectionPath(user.ID, c.ID), c.Value()); err != nil {
		return models.Collection{}, err
	}

	s.mu.Lock()
	s.collections = append(s.collections, c)
	s.mu.Unlock()

	s.log.Info(ctx, "collection created", "collection_id", c.ID, "title", title)
	return c, nil
}

// WatchCollections subscribes to the session user's collection subtree. Each
// remote change replaces the whole cached set with the freshly decoded
// children and pushes the new snapshot; children that fail to decode are
// skipped. Snapshots are sorted by collection identifier so consecutive
// snapshots of the same state compare equal. The channel closes when ctx is
// cancelled or the subscription drops.
func (s *Service) WatchCollections(ctx context.Context) (<-chan []models.Collection, error) {
	user, err := s.Session()
	if err != nil {
		return nil, err
	}

	raw, err := s.store.Observe(ctx, collectionsPath(user.ID))
	if err != nil {
		return nil, err
	}

	out := make(chan []models.Collection, 1)
	go func() {
		defer close(out)
		for value := range raw {
			snapshot := s.decodeCollections(ctx, value)

			s.mu.Lock()
			s.collections = snapshot
			s.mu.Unlock()

			select {
			case out <- snapshot:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (s *Service) decodeCollections(ctx context.Context, value any) []models.Collection {
	children, ok := value.(map[string]any)
	if !ok {
		return []models.Collection{}
	}

	snapshot := make([]models.Collection, 0, len(children))
	for key, child := range children {
		c, err := models.CollectionFromValue(key, child)
		if err != nil {
			s.log.Warn(ctx, "skipping undecodable collection", "key", key, "error", err)
			continue
		}
		snapshot = append(snapshot, c)
	}
	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].ID.String() < snapshot[j].ID.String()
	})
	return snapshot
}

// ListReviews reads all of the session user's reviews once and replaces the
// cached set. Children that fail to decode are dropped.
func (s *Service) ListReviews(ctx context.Context) ([]models.Review, error) {
	user, err := s.Session()
	if err != nil {
		return nil, err
	}

	value, err := s.store.ReadOnce(ctx, reviewsPath(user.ID))
	if err != nil {
		return nil, err
	}

	reviews := make([]models.Review, 0)
	if children, ok := value.(map[string]any); ok {
		for key, child := range children {
			r, err := models.ReviewFromValue(key, child)
			if err != nil {
				s.log.Warn(ctx, "skipping undecodable review", "key", key, "error", err)
				continue
			}
			reviews = append(reviews, r)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].ID.String() < reviews[j].ID.String()
	})

	s.mu.Lock()
	s.reviews = reviews
	s.mu.Unlock()
	return reviews, nil
}

// ListCollectionReviews fetches every review referenced by the collection's
// review index, in parallel, and replaces the cached review set with the ones
// that decoded. Individual failures are logged and skipped, so the result
// never exceeds the index size.
func (s *Service) ListCollectionReviews(ctx context.Context, c models.Collection) ([]models.Review, error) {
	user, err := s.Session()
	if err != nil {
		return nil, err
	}

	var wg gosync.WaitGroup
	var mu gosync.Mutex
	reviews := make([]models.Review, 0, len(c.Reviews))

	for reviewID := range c.Reviews {
		wg.Add(1)
		go func(reviewID string) {
			defer wg.Done()

			id, err := uuid.Parse(reviewID)
			if err != nil {
				s.log.Warn(ctx, "bad review id in collection index", "key", reviewID, "error", err)
				return
			}

			value, err := s.store.ReadOnce(ctx, reviewPath(user.ID, id))
			if err != nil {
				s.log.Warn(ctx, "review fetch failed", "review_id", reviewID, "error", err)
				return
			}
			if value == nil {
				return
			}

			r, err := models.ReviewFromValue(reviewID, value)
			if err != nil {
				s.log.Warn(ctx, "skipping undecodable review", "review_id", reviewID, "error", err)
				return
			}

			mu.Lock()
			reviews = append(reviews, r)
			mu.Unlock()
		}(reviewID)
	}
	wg.Wait()

	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].ID.String() < reviews[j].ID.String()
	})

	s.mu.Lock()
	s.reviews = reviews
	s.mu.Unlock()
	return reviews, nil
}

// SaveReviewParams carries the inputs for SaveReview. A zero ReviewID means
// "create a new review"; a non-zero one overwrites the existing record.
// MovieID 0 and an empty ImageURL mean no movie is attached.
type SaveReviewParams struct {
	CollectionID uuid.UUID
	ReviewID     uuid.UUID
	Title        string
	MovieID      int64
	ImageURL     string

	MemorableQuotes     string
	SceneDescription    string
	ActorNotes          string
	CinematographyNotes string
}

// SaveReview upserts a review and then refreshes the owning collection's
// denormalized summary: the review-index entry always, the poster URL when
// the review carries one. The summary updates are independent remote writes,
// not atomic with the review write; their failures are logged, not surfaced.
// On a failed review write nothing is mutated, locally or remotely.
func (s *Service) SaveReview(ctx context.Context, p SaveReviewParams) (models.Review, error) {
	user, err := s.Session()
	if err != nil {
		return models.Review{}, err
	}

	r := models.Review{
		ID:                  p.ReviewID,
		CollectionID:        p.CollectionID,
		MovieID:             p.MovieID,
		Title:               p.Title,
		ImageURL:            p.ImageURL,
		MemorableQuotes:     p.MemorableQuotes,
		SceneDescription:    p.SceneDescription,
		ActorNotes:          p.ActorNotes,
		CinematographyNotes: p.CinematographyNotes,
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	if err := s.store.Write(ctx, reviewPath(user.ID, r.ID), r.Value()); err != nil {
		return models.Review{}, err
	}

	s.denormalize(ctx, user.ID, r)
	s.applyToCache(r)

	s.log.Info(ctx, "review saved", "review_id", r.ID, "collection_id", r.CollectionID)
	return r, nil
}

// denormalize pushes the review's movie id and poster URL into the owning
// collection record.
func (s *Service) denormalize(ctx context.Context, userID uuid.UUID, r models.Review) {
	base := collectionPath(userID, r.CollectionID)

	indexPath := base + "/reviews/" + r.ID.String()
	if err := s.store.Write(ctx, indexPath, r.MovieID); err != nil {
		s.log.Error(ctx, "collection index update failed", "path", indexPath, "error", err)
	}

	if r.ImageURL != "" {
		if err := s.store.Write(ctx, base+"/imageUrl", r.ImageURL); err != nil {
			s.log.Error(ctx, "collection poster update failed", "collection_id", r.CollectionID, "error", err)
		}
	}
}

// applyToCache mirrors a saved review into the in-memory sets. When the
// owning collection has not been cached yet the collection-side update is
// skipped; the cache stays stale until the next full refresh.
func (s *Service) applyToCache(r models.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.collections {
		if s.collections[i].ID != r.CollectionID {
			continue
		}
		if s.collections[i].Reviews == nil {
			s.collections[i].Reviews = make(map[string]int64)
		}
		s.collections[i].Reviews[r.ID.String()] = r.MovieID
		if r.ImageURL != "" {
			s.collections[i].ImageURL = r.ImageURL
		}

		for j := range s.reviews {
			if s.reviews[j].ID == r.ID {
				s.reviews[j] = r
				return
			}
		}
		s.reviews = append(s.reviews, r)
		return
	}
}

// DeleteCollection removes the collection record remotely. The call reports
// success immediately; the remote outcome is only logged. Reviews that
// reference the collection are not cascade-deleted.
func (s *Service) DeleteCollection(ctx context.Context, c models.Collection) error {
	user, err := s.Session()
	if err != nil {
		return err
	}

	go func(ctx context.Context) {
		if err := s.store.Delete(ctx, collectionPath(user.ID, c.ID)); err != nil {
			s.log.Error(ctx, "collection delete failed", "collection_id", c.ID, "error", err)
		}
	}(context.WithoutCancel(ctx))

	return nil
}

// DeleteReview removes the review record remotely, fire-and-forget like
// DeleteCollection. The owning collection's index entry is left behind and
// drifts until the next review save or full refresh.
func (s *Service) DeleteReview(ctx context.Context, r models.Review) error {
	user, err := s.Session()
	if err != nil {
		return err
	}

	go func(ctx context.Context) {
		if err := s.store.Delete(ctx, reviewPath(user.ID, r.ID)); err != nil {
			s.log.Error(ctx, "review delete failed", "review_id", r.ID, "error", err)
		}
	}(context.WithoutCancel(ctx))

	return nil
}

// Collections returns a copy of the cached collection set.
func (s *Service) Collections() []models.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Collection, len(s.collections))
	copy(out, s.collections)
	return out
}

// Reviews returns a copy of the cached review set.
func (s *Service) Reviews() []models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Review, len(s.reviews))
	copy(out, s.reviews)
	return out
}
